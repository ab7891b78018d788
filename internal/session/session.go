package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/plan"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/store"
)

// Session is the update coordinator. It owns the row cache for the active
// date, the undo/redo log, and the deferred persistence queue. Cell edits
// are applied to the cache optimistically by the views; the session's
// single worker goroutine drains the queue in FIFO order, so sequential
// edits to the same record always reach the store in the order they were
// made.
type Session struct {
	store store.Store
	cache *plan.Cache
	cfg   *config.Config

	queue   chan plan.Mutation
	pending sync.WaitGroup

	histMu sync.Mutex
	hist   *history

	status func(string)
}

// New creates a session over the given store and cache.
func New(st store.Store, cache *plan.Cache, cfg *config.Config) *Session {
	return &Session{
		store:  st,
		cache:  cache,
		cfg:    cfg,
		queue:  make(chan plan.Mutation, 256),
		hist:   newHistory(cfg.History.Limit),
		status: func(msg string) { log.Println(msg) },
	}
}

// SetStatusFunc replaces the status sink (the UI's status bar). Must be
// called before Start.
func (s *Session) SetStatusFunc(fn func(string)) {
	if fn != nil {
		s.status = fn
	}
}

// Start launches the persistence worker. It runs until ctx is cancelled.
func (s *Session) Start(ctx context.Context) {
	go s.worker(ctx)
}

func (s *Session) worker(ctx context.Context) {
	for {
		select {
		case m := <-s.queue:
			s.persist(ctx, m)
			s.pending.Done()
		case <-ctx.Done():
			return
		}
	}
}

// Cache exposes the session's row cache to the view layer.
func (s *Session) Cache() *plan.Cache { return s.cache }

// View returns a projection of the given kind over the session cache.
func (s *Session) View(kind plan.ViewKind) *plan.View {
	return plan.NewView(s.cache, kind, &s.cfg.Display)
}

// LoadDate replaces the cache with the store's records for one date.
// A fetch failure clears the cache so the UI never renders stale rows
// under a new date.
func (s *Session) LoadDate(ctx context.Context, date string) (int, error) {
	records, err := s.store.FetchByDate(ctx, date)
	if err != nil {
		s.cache.Load(date, nil)
		s.status(fmt.Sprintf("エラー: データ取得失敗: %v", err))
		return 0, err
	}
	s.cache.Load(date, records)
	s.status(fmt.Sprintf("%s のデータ %d 件を読み込みました。", date, len(records)))
	return len(records), nil
}

// reload re-reads the active date from the store, discarding whatever the
// optimistic cache holds.
func (s *Session) reload(ctx context.Context) {
	date := s.cache.Date()
	if date == "" {
		return
	}
	records, err := s.store.FetchByDate(ctx, date)
	if err != nil {
		s.status(fmt.Sprintf("エラー: データ取得失敗: %v", err))
		return
	}
	s.cache.Load(date, records)
}

// Edit validates a field edit, applies it to the cache optimistically and
// queues it for persistence. The caller is never blocked on store I/O.
func (s *Session) Edit(id int64, column string, value any) error {
	normalized, err := plan.Normalize(&s.cfg.Display, column, value)
	if err != nil {
		return err
	}
	if err := s.cache.Apply(id, column, normalized); err != nil {
		return err
	}
	s.Submit(plan.Mutation{RecordID: id, Column: column, Value: normalized})
	return nil
}

// Submit queues a mutation already applied to the cache by a view.
func (s *Session) Submit(m plan.Mutation) {
	s.pending.Add(1)
	s.queue <- m
}

// Flush blocks until every queued mutation has been persisted (or failed).
func (s *Session) Flush() {
	s.pending.Wait()
}

// persist is the write half of one mutation's lifecycle: capture the old
// value (best effort), write, record history, then apply the refresh
// policy. Check and instruction columns only affect the unprocessed
// aggregations, which re-project from the already-mutated cache; every
// other column forces a full reload because derived presentation state may
// depend on store-side columns beyond the edited one.
func (s *Session) persist(ctx context.Context, m plan.Mutation) {
	old, haveOld := s.store.ReadField(ctx, m.RecordID, m.Column)

	if err := s.store.UpdateField(ctx, m.RecordID, m.Column, m.Value); err != nil {
		log.Printf("persist of %s for record %d failed: %v", m.Column, m.RecordID, err)
		s.status(fmt.Sprintf("レコード %d の更新に失敗しました。", m.RecordID))
		s.reload(ctx)
		return
	}

	if haveOld && old != m.Value {
		s.histMu.Lock()
		s.hist.record(operation{RecordID: m.RecordID, Column: m.Column, Old: old, New: m.Value})
		s.histMu.Unlock()
	}

	s.status(fmt.Sprintf("レコード %d の %s を更新しました。", m.RecordID, m.Column))

	if !cheapRefresh(m.Column) {
		s.reload(ctx)
	}
}

// cheapRefresh reports whether an edit to the column needs only the
// unprocessed-aggregation recompute instead of a full reload.
func cheapRefresh(column string) bool {
	return column == model.ColCleaningInstruction || model.CheckColumn(column)
}

// Undo reverts the most recent recorded edit through the store and
// reloads. At the start of history it is a no-op against the store.
func (s *Session) Undo(ctx context.Context) (string, error) {
	s.Flush()
	s.histMu.Lock()
	defer s.histMu.Unlock()

	op, ok := s.hist.undo()
	if !ok {
		msg := "元に戻す操作はありません。"
		s.status(msg)
		return msg, nil
	}
	if err := s.store.UpdateField(ctx, op.RecordID, op.Column, op.Old); err != nil {
		s.hist.cancelUndo()
		s.status(fmt.Sprintf("レコード %d の取り消しに失敗しました。", op.RecordID))
		return "", err
	}
	s.reload(ctx)
	msg := fmt.Sprintf("元に戻しました: レコード %d の %s", op.RecordID, op.Column)
	s.status(msg)
	return msg, nil
}

// Redo re-applies the most recently undone edit. At the end of history it
// is a no-op against the store.
func (s *Session) Redo(ctx context.Context) (string, error) {
	s.Flush()
	s.histMu.Lock()
	defer s.histMu.Unlock()

	op, ok := s.hist.redo()
	if !ok {
		msg := "やり直す操作はありません。"
		s.status(msg)
		return msg, nil
	}
	if err := s.store.UpdateField(ctx, op.RecordID, op.Column, op.New); err != nil {
		s.hist.cancelRedo()
		s.status(fmt.Sprintf("レコード %d のやり直しに失敗しました。", op.RecordID))
		return "", err
	}
	s.reload(ctx)
	msg := fmt.Sprintf("やり直しました: レコード %d の %s", op.RecordID, op.Column)
	s.status(msg)
	return msg, nil
}

// CopyInstructions bulk-copies one column's values from the source date to
// the destination date. Equal dates are rejected before any store call.
// On success the active date is reloaded if it is the destination.
func (s *Session) CopyInstructions(ctx context.Context, column, sourceDate, destDate string) (int, error) {
	if column == "" {
		column = model.ColCleaningInstruction
	}
	if sourceDate == "" || destDate == "" {
		return 0, fmt.Errorf("source and destination dates are required")
	}
	if sourceDate == destDate {
		return 0, store.ErrSameDate
	}

	s.Flush()
	count, err := s.store.CopyColumnBetweenDates(ctx, column, sourceDate, destDate)
	if err != nil {
		s.status(fmt.Sprintf("コピーに失敗しました: %v", err))
		return 0, err
	}
	s.status(fmt.Sprintf("%d 件の洗浄指示をコピーしました。", count))
	if s.cache.Date() == destDate {
		s.reload(ctx)
	}
	return count, nil
}

// Unprocessed recomputes the grouped-by-line matrix of machines still
// awaiting the given check, from the current cache contents.
func (s *Session) Unprocessed(kind model.CheckKind) [][]string {
	return plan.UnprocessedMatrix(s.cache.Records(), kind, s.cfg.Display.Lines)
}
