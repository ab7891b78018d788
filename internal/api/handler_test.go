package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/plan"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/session"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8733,
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Display: config.DisplayConfig{
			Lines:         "ABCDEF",
			ShardCount:    3,
			NotesChoices:  []string{"急ぎ", "後回し"},
			RestrictNotes: false,
		},
		History: config.HistoryConfig{Limit: 100},
	}
}

type testServer struct {
	router *gin.Engine
	sess   *session.Session
	db     *gorm.DB
}

func newTestServer(t *testing.T, seed ...model.PlanRecord) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PlanRecord{}))
	if len(seed) > 0 {
		require.NoError(t, db.Create(&seed).Error)
	}

	cfg := testConfig()
	sess := session.New(store.NewGormStore(db), plan.NewCache(), cfg)
	sess.SetStatusFunc(func(string) {})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sess.Start(ctx)

	return &testServer{router: NewRouter(sess, cfg), sess: sess, db: db}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestGetPlanRejectsBadDate(t *testing.T) {
	ts := newTestServer(t)

	for _, date := range []string{"", "2026/09/01", "not-a-date"} {
		w := ts.do(t, http.MethodGet, "/api/plan?date="+date, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", date)
	}
}

func TestGetPlanRendersBothViews(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1", PartNumber: "P-100", CleaningInstruction: "2"},
		model.PlanRecord{ID: 2, AcquisitionDate: "2026-09-01", MachineNo: "A-2", PartNumber: "P-200"},
		model.PlanRecord{ID: 3, AcquisitionDate: "2026-09-02", MachineNo: "B-1", PartNumber: "P-300"},
	)

	w := ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
		Main  struct {
			Columns []plan.Column     `json:"columns"`
			Shards  [][][]cellPayload `json:"shards"`
		} `json:"main"`
		Cleaning struct {
			Columns []plan.Column   `json:"columns"`
			Rows    [][]cellPayload `json:"rows"`
		} `json:"cleaning"`
	}
	decode(t, w, &resp)

	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Main.Shards, 3)

	total := 0
	for _, shard := range resp.Main.Shards {
		total += len(shard)
	}
	assert.Equal(t, 2, total, "shards jointly cover every row exactly once")
	assert.Equal(t, "A-1", resp.Main.Shards[0][0][0].Value)

	require.Len(t, resp.Cleaning.Rows, 2)
	assert.Equal(t, "2", resp.Cleaning.Rows[0][1].Value)
}

func TestGetPlanEmptyDateIsNotAnError(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 0, resp.Count)
}

func TestPatchCellQueuesAndPersists(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1"},
	)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil).Code)

	w := ts.do(t, http.MethodPatch, "/api/plan/cells", gin.H{
		"record_id": 1,
		"column":    model.ColCleaningInstruction,
		"value":     "3",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	ts.sess.Flush()
	var rec model.PlanRecord
	require.NoError(t, ts.db.Take(&rec, 1).Error)
	assert.Equal(t, "3", rec.CleaningInstruction)
}

func TestPatchCellRejectsInvalidEdits(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1"},
	)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil).Code)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing column", gin.H{"record_id": 1, "value": "1"}},
		{"read-only column", gin.H{"record_id": 1, "column": model.ColMachineNo, "value": "X-9"}},
		{"out-of-range instruction", gin.H{"record_id": 1, "column": model.ColCleaningInstruction, "value": "7"}},
		{"string for check column", gin.H{"record_id": 1, "column": model.ColCleaningCheck, "value": "yes"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPatch, "/api/plan/cells", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetUnprocessed(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "D-10", CleaningInstruction: "1"},
		model.PlanRecord{ID: 2, AcquisitionDate: "2026-09-01", MachineNo: "D-2", CleaningInstruction: "1"},
		model.PlanRecord{ID: 3, AcquisitionDate: "2026-09-01", MachineNo: "A-1", CleaningInstruction: "1", CleaningCheck: true},
	)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil).Code)

	w := ts.do(t, http.MethodGet, "/api/plan/unprocessed?check=cleaning", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lines []string   `json:"lines"`
		Rows  [][]string `json:"rows"`
	}
	decode(t, w, &resp)
	require.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, resp.Lines)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "D-2", resp.Rows[0][3], "numeric machine order, not lexical")
	assert.Equal(t, "D-10", resp.Rows[1][3])
	assert.Equal(t, "", resp.Rows[0][0], "checked machine is excluded")

	w = ts.do(t, http.MethodGet, "/api/plan/unprocessed?check=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUndoRedoEndpoints(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1"},
	)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/plan?date=2026-09-01", nil).Code)

	require.Equal(t, http.StatusAccepted, ts.do(t, http.MethodPatch, "/api/plan/cells", gin.H{
		"record_id": 1,
		"column":    model.ColNotes,
		"value":     "急ぎ",
	}).Code)
	ts.sess.Flush()

	w := ts.do(t, http.MethodPost, "/api/plan/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec model.PlanRecord
	require.NoError(t, ts.db.Take(&rec, 1).Error)
	assert.Equal(t, "", rec.Notes)

	w = ts.do(t, http.MethodPost, "/api/plan/redo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, ts.db.Take(&rec, 1).Error)
	assert.Equal(t, "急ぎ", rec.Notes)
}

func TestPostCopy(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1", CleaningInstruction: "2"},
		model.PlanRecord{ID: 2, AcquisitionDate: "2026-09-02", MachineNo: "A-1", CleaningInstruction: "0"},
	)

	w := ts.do(t, http.MethodPost, "/api/plan/copy", gin.H{
		"source_date": "2026-09-01",
		"dest_date":   "2026-09-02",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Updated int `json:"updated"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Updated)

	var rec model.PlanRecord
	require.NoError(t, ts.db.Take(&rec, 2).Error)
	assert.Equal(t, "2", rec.CleaningInstruction)
}

func TestPostCopyErrorMapping(t *testing.T) {
	ts := newTestServer(t,
		model.PlanRecord{ID: 1, AcquisitionDate: "2026-09-01", MachineNo: "A-1", CleaningInstruction: "0"},
	)

	w := ts.do(t, http.MethodPost, "/api/plan/copy", gin.H{
		"source_date": "2026-09-01",
		"dest_date":   "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "same-date copy")

	w = ts.do(t, http.MethodPost, "/api/plan/copy", gin.H{
		"source_date": "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing dest_date")

	w = ts.do(t, http.MethodPost, "/api/plan/copy", gin.H{
		"source_date": "2026-09-01",
		"dest_date":   "2026-09-02",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "sentinel-only source has no data to copy")
}

func TestGetMeta(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/meta", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lines      []string                 `json:"lines"`
		ShardCount int                      `json:"shard_count"`
		Colors     map[string]string        `json:"colors"`
		Views      map[string][]plan.Column `json:"views"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, resp.Lines)
	assert.Equal(t, 3, resp.ShardCount)
	assert.Equal(t, "#FF9999", resp.Colors["instruction_1"])
	assert.Len(t, resp.Views["main"], 11)
	assert.Len(t, resp.Views["cleaning"], 6)

	// Second hit is served from the response cache.
	w2 := ts.do(t, http.MethodGet, "/api/meta", nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w.Body.String(), w2.Body.String())
}
