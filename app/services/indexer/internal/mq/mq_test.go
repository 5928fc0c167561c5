package mq

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"VoiceMart/app/common/consts/biz"
	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	mu       sync.Mutex
	upserted []search.Document
	deleted  []int64
	batches  [][]search.Document
}

func (f *fakeIndex) Upsert(_ context.Context, doc search.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, doc)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) BulkIndex(_ context.Context, docs []search.Document) (search.BulkStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, docs)
	return search.BulkStats{Indexed: uint64(len(docs))}, nil
}

// fakeProducts serves ids 1..total in pages, honouring AfterId and Limit.
type fakeProducts struct {
	total   int64
	filters []product.ProductFilter
}

func (f *fakeProducts) FindByFilter(_ context.Context, filter product.ProductFilter) ([]*product.ProductSummary, error) {
	f.filters = append(f.filters, filter)
	var out []*product.ProductSummary
	for id := filter.AfterId + 1; id <= f.total && len(out) < filter.Limit; id++ {
		out = append(out, &product.ProductSummary{
			Id:           id,
			Name:         "p",
			CategoryId:   sql.NullInt64{Int64: filter.CategoryId, Valid: filter.CategoryId > 0},
			CategoryName: "Laptops",
			IsActive:     true,
			CreatedAt:    time.Unix(0, 0),
			UpdatedAt:    time.Unix(0, 0),
		})
	}
	return out, nil
}

type fakeCategories struct {
	names   map[int64]string
	lookups int
	dropped []int64
}

func (f *fakeCategories) FindOne(_ context.Context, id int64) (*product.Categories, error) {
	f.lookups++
	name, ok := f.names[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &product.Categories{Id: id, Name: name}, nil
}

func (f *fakeCategories) DelActiveCache(_ context.Context, ids ...int64) error {
	f.dropped = append(f.dropped, ids...)
	return nil
}

type fakeTasks struct {
	tasks   []*asynq.Task
	pending map[string]bool
}

func (f *fakeTasks) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.pending == nil {
		f.pending = map[string]bool{}
	}
	for _, opt := range opts {
		if opt.Type() == asynq.TaskIDOpt {
			id := opt.Value().(string)
			if f.pending[id] {
				return nil, asynq.ErrTaskIDConflict
			}
			f.pending[id] = true
		}
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestContext() (*svc.ServiceContext, *fakeIndex, *fakeProducts, *fakeCategories, *fakeTasks) {
	idx := &fakeIndex{}
	products := &fakeProducts{}
	categories := &fakeCategories{names: map[int64]string{3: "Laptops"}}
	tasks := &fakeTasks{}
	return &svc.ServiceContext{
		Index:      idx,
		Products:   products,
		Categories: categories,
		Tasks:      tasks,
	}, idx, products, categories, tasks
}

const productInsert = `{
  "data":[
    {"id":"11","name":"Ultrabook","description":"light","price":"999.50","category_id":"3","brand":"Acme",
     "image":null,"stock":"4","rating":"4.5","num_reviews":"12","is_active":"1",
     "created_at":"2024-05-01 10:00:00","updated_at":"2024-05-02 11:30:00"},
    {"id":"12","name":"Stand","description":"","price":"20","category_id":"3","brand":"Acme",
     "image":"/img/stand.png","stock":"0","rating":"0","num_reviews":"0","is_active":"0",
     "created_at":"","updated_at":""}
  ],
  "database":"voicemart","table":"products","isDdl":false,"type":"INSERT","ts":1
}`

func TestHandleProductsMessage_Upsert(t *testing.T) {
	sc, idx, _, categories, _ := newTestContext()

	var msg CanalProductsMessage
	require.NoError(t, json.Unmarshal([]byte(productInsert), &msg))
	HandleProductsMessage(context.Background(), sc, msg)

	require.Len(t, idx.upserted, 2)
	first := idx.upserted[0]
	assert.Equal(t, int64(11), first.ProductID)
	assert.Equal(t, 999.5, first.Price)
	assert.Equal(t, "Laptops", first.Category)
	assert.Equal(t, int64(12), first.NumReviews)
	assert.True(t, first.IsActive)
	assert.Empty(t, first.Image)
	assert.Contains(t, first.CreatedAt, "2024-05-01T10:00:00")

	assert.False(t, idx.upserted[1].IsActive)
	assert.Equal(t, "/img/stand.png", idx.upserted[1].Image)
	// category name is resolved once per message
	assert.Equal(t, 1, categories.lookups)
}

func TestHandleProductsMessage_Delete(t *testing.T) {
	sc, idx, _, _, _ := newTestContext()

	HandleProductsMessage(context.Background(), sc, CanalProductsMessage{
		canalEnvelope: canalEnvelope{Type: "delete"},
		Data:          []ProductRow{{ID: 5}, {ID: 6}},
	})
	assert.Equal(t, []int64{5, 6}, idx.deleted)
	assert.Empty(t, idx.upserted)
}

func TestHandleProductsMessage_SkipsDdlAndMissingIndex(t *testing.T) {
	sc, idx, _, _, _ := newTestContext()
	HandleProductsMessage(context.Background(), sc, CanalProductsMessage{
		canalEnvelope: canalEnvelope{Type: "ALTER", IsDdl: true},
		Data:          []ProductRow{{ID: 1}},
	})
	assert.Empty(t, idx.upserted)

	sc.Index = nil
	assert.NotPanics(t, func() {
		HandleProductsMessage(context.Background(), sc, CanalProductsMessage{
			canalEnvelope: canalEnvelope{Type: "INSERT"},
			Data:          []ProductRow{{ID: 1}},
		})
	})
}

func TestHandleCategoriesMessage(t *testing.T) {
	sc, _, _, categories, tasks := newTestContext()

	update := CanalCategoriesMessage{
		canalEnvelope: canalEnvelope{Type: "UPDATE"},
		Data:          []CategoryRow{{ID: 3, Name: "Notebooks"}},
	}
	HandleCategoriesMessage(context.Background(), sc, update)
	// a second change while the first reindex is pending collapses into it
	HandleCategoriesMessage(context.Background(), sc, update)

	assert.Equal(t, []int64{3, 3}, categories.dropped)
	require.Len(t, tasks.tasks, 1)
	assert.Equal(t, biz.ReindexCategoryTask, tasks.tasks[0].Type())

	var payload ReindexCategoryPayload
	require.NoError(t, json.Unmarshal(tasks.tasks[0].Payload(), &payload))
	assert.Equal(t, int64(3), payload.CategoryID)

	HandleCategoriesMessage(context.Background(), sc, CanalCategoriesMessage{
		canalEnvelope: canalEnvelope{Type: "INSERT"},
		Data:          []CategoryRow{{ID: 9}},
	})
	assert.Len(t, tasks.tasks, 1)
	assert.Contains(t, categories.dropped, int64(9))
}

func TestReproject_Pages(t *testing.T) {
	sc, idx, products, _, _ := newTestContext()
	products.total = int64(biz.ReindexBatchSize + 7)

	n, err := Reproject(context.Background(), sc, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(biz.ReindexBatchSize+7), n)

	require.Len(t, idx.batches, 2)
	assert.Len(t, idx.batches[1], 7)
	assert.Equal(t, "Laptops", idx.batches[0][0].Category)
	assert.Equal(t, int64(3), idx.batches[0][0].CategoryID)

	require.Len(t, products.filters, 2)
	assert.Equal(t, int64(biz.ReindexBatchSize), products.filters[1].AfterId)
	assert.Equal(t, int64(3), products.filters[1].CategoryId)
	assert.False(t, products.filters[0].ActiveOnly)
}

func TestReindexHandlerRejectsBadPayload(t *testing.T) {
	sc, _, _, _, _ := newTestContext()
	h := newReindexCategoryHandler(sc)

	err := h(context.Background(), asynq.NewTask(biz.ReindexCategoryTask, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h(context.Background(), asynq.NewTask(biz.ReindexCategoryTask, []byte(`{"category_id":0}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestEnqueueBackfillWithoutTasks(t *testing.T) {
	sc, _, _, _, _ := newTestContext()
	sc.Tasks = nil
	assert.Error(t, EnqueueBackfill(context.Background(), sc))
}

type scriptedReader struct {
	msgs      []kafka.Message
	committed []int64
	cancel    context.CancelFunc
	closed    bool
	failOnce  bool
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if r.failOnce {
		r.failOnce = false
		return kafka.Message{}, errors.New("broker hiccup")
	}
	if len(r.msgs) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func shortFetchRetry(t *testing.T, d time.Duration) {
	t.Helper()
	prev, prevMax := fetchRetryDelay, maxFetchRetryDelay
	fetchRetryDelay, maxFetchRetryDelay = d, d
	t.Cleanup(func() { fetchRetryDelay, maxFetchRetryDelay = prev, prevMax })
}

func TestConsumeCommitsEveryMessage(t *testing.T) {
	shortFetchRetry(t, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &scriptedReader{
		msgs:     []kafka.Message{{Offset: 1, Value: []byte("a")}, {Offset: 2, Value: []byte("not json")}},
		cancel:   cancel,
		failOnce: true,
	}
	var seen []string
	err := Consume(ctx, r, "test", func(_ context.Context, v []byte) {
		seen = append(seen, string(v))
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "not json"}, seen)
	assert.Equal(t, []int64{1, 2}, r.committed)
	assert.True(t, r.closed)
}

type failingReader struct {
	err     error
	fetches int
	closed  bool
}

func (r *failingReader) FetchMessage(context.Context) (kafka.Message, error) {
	r.fetches++
	return kafka.Message{}, r.err
}

func (r *failingReader) CommitMessages(context.Context, ...kafka.Message) error { return nil }

func (r *failingReader) Close() error {
	r.closed = true
	return nil
}

func TestConsumeStopsWhenReaderClosed(t *testing.T) {
	r := &failingReader{err: io.EOF}
	err := Consume(context.Background(), r, "test", func(context.Context, []byte) {
		t.Fatal("handler must not run")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, r.fetches)
	assert.True(t, r.closed)
}

func TestConsumeBacksOffOnPersistentFetchError(t *testing.T) {
	shortFetchRetry(t, 20*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := &failingReader{err: errors.New("broker unreachable")}
	require.NoError(t, Consume(ctx, r, "test", func(context.Context, []byte) {}))

	assert.GreaterOrEqual(t, r.fetches, 2)
	assert.LessOrEqual(t, r.fetches, 8)
	assert.True(t, r.closed)
}

func TestNormalizeTimestamp(t *testing.T) {
	assert.Equal(t, "", normalizeTimestamp("  "))
	assert.Equal(t, "garbage", normalizeTimestamp("garbage"))
	assert.Equal(t, "2024-05-01T10:00:00Z", normalizeTimestamp("2024-05-01T10:00:00Z"))
	assert.True(t, canalBool("1"))
	assert.False(t, canalBool("0"))
}
