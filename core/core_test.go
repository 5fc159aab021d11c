package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"scribe/config"
	"scribe/db"
	"scribe/events/handlers"
	"scribe/events/registry"
	"scribe/helper"
	"scribe/interfaces"
	"scribe/mocks"
	"scribe/model"
)

var worldAddr = model.FeltFromUint64(0x3043)

type fakeChain struct {
	mu       sync.Mutex
	blocks   []*model.Block
	receipts map[model.Felt]*model.Receipt
}

func newFakeChain() *fakeChain {
	return &fakeChain{receipts: make(map[model.Felt]*model.Receipt)}
}

// addBlock appends a block holding one transaction per event. Hashes fall
// with position so hash order never matches block order.
func (c *fakeChain) addBlock(events ...model.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := uint64(len(c.blocks))
	b := &model.Block{Number: n, Hash: model.FeltFromUint64(0xb000 + n), Timestamp: 1700000000 + n}
	for i, ev := range events {
		h := model.FeltFromUint64(n<<16 | uint64(0xffff-i))
		b.Transactions = append(b.Transactions, model.Transaction{Hash: h, Type: "INVOKE"})
		c.receipts[h] = &model.Receipt{TransactionHash: h, ExecutionStatus: "SUCCEEDED", Events: []model.Event{ev}}
	}
	c.blocks = append(c.blocks, b)
}

func (c *fakeChain) BlockNumber(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(len(c.blocks) - 1), nil
}

func (c *fakeChain) BlockWithTxs(_ context.Context, number uint64) (*model.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if number >= uint64(len(c.blocks)) {
		return nil, fmt.Errorf("block %d not found", number)
	}
	return c.blocks[number], nil
}

func (c *fakeChain) TransactionReceipt(_ context.Context, hash model.Felt) (*model.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[hash]
	if !ok {
		return nil, fmt.Errorf("receipt %s not found", hash)
	}
	return r, nil
}

type batchingChain struct {
	*fakeChain
	calls int
}

func (c *batchingChain) TransactionReceipts(ctx context.Context, hashes []model.Felt) ([]*model.Receipt, error) {
	c.calls++
	out := make([]*model.Receipt, len(hashes))
	for i, h := range hashes {
		r, err := c.TransactionReceipt(ctx, h)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

type schemas map[string]model.Ty

func (s schemas) ModelSchema(_ context.Context, name string, _ model.Felt) (model.Ty, error) {
	t, ok := s[name]
	if !ok {
		return model.Ty{}, fmt.Errorf("world has no model %s", name)
	}
	return t.Clone(), nil
}

func movesSchema() model.Ty {
	return model.StructTy("Moves",
		model.Member{Name: "player", Key: true, Ty: model.PrimitiveTy(model.ContractAddress)},
		model.Member{Name: "remaining", Ty: model.PrimitiveTy(model.U8)},
		model.Member{Name: "last_direction", Ty: model.UnitEnumTy("Direction", "None", "Left", "Right", "Up", "Down")},
	)
}

func registerEvent(name string) model.Event {
	return model.Event{
		FromAddress: worldAddr,
		Keys:        []model.Felt{helper.Selector(handlers.ModelRegistered)},
		Data:        []model.Felt{model.MustShortString(name), model.FeltFromUint64(0x111)},
	}
}

func setRecordEvent(name string, player, remaining, direction uint64) model.Event {
	return model.Event{
		FromAddress: worldAddr,
		Keys:        []model.Felt{helper.Selector(handlers.StoreSetRecord)},
		Data: []model.Felt{
			model.MustShortString(name),
			model.FeltFromUint64(1), model.FeltFromUint64(player),
			model.FeltFromUint64(0),
			model.FeltFromUint64(2), model.FeltFromUint64(remaining), model.FeltFromUint64(direction),
		},
	}
}

func openDB(t testing.TB, path string) *db.Handler {
	t.Helper()
	h, err := db.Open(context.Background(), config.DBConfig{Driver: config.DriverSQLite, DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func newEngine(t testing.TB, chain interfaces.ChainClient, h *db.Handler, opts ...Option) *Engine {
	t.Helper()
	procs, err := registry.Default(registry.Options{})
	require.NoError(t, err)
	cfg := config.Default()
	cfg.World.Address = worldAddr.Hex()
	cfg.Engine.PollInterval = 10 * time.Millisecond
	e, err := New(cfg, chain, schemas{"Moves": movesSchema()}, h, procs, opts...)
	require.NoError(t, err)
	return e
}

func remaining(t testing.TB, h *db.Handler, player uint64) (uint64, error) {
	t.Helper()
	rec, err := h.Record(context.Background(), "Moves", helper.EntityID([]model.Felt{model.FeltFromUint64(player)}))
	if err != nil {
		return 0, err
	}
	m, ok := rec.Value.Struct.Member("remaining")
	require.True(t, ok)
	return m.Ty.Primitive.Uint64(), nil
}

func head(t testing.TB, h *db.Handler) (uint64, bool) {
	t.Helper()
	n, found, err := h.Head(context.Background())
	require.NoError(t, err)
	return n, found
}

func TestEngine_SyncToHead(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1))
	chain.addBlock(setRecordEvent("Moves", 1, 9, 2))

	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	next, err := e.SyncToHead(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next)
	assert.Equal(t, CaughtUp, e.State())

	n, found := head(t, h)
	assert.True(t, found)
	assert.Equal(t, uint64(2), n)

	rem, err := remaining(t, h, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), rem)

	page, err := h.Records(ctx, "Moves", model.RecordQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)

	evs, err := h.Events(ctx, nil, model.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), evs.TotalCount)
}

func TestEngine_SameBlockWritesFollowBlockOrder(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(
		setRecordEvent("Moves", 1, 10, 1),
		setRecordEvent("Moves", 1, 9, 2),
		setRecordEvent("Moves", 1, 8, 3),
	)

	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)
	_, err := e.SyncToHead(ctx, 0)
	require.NoError(t, err)

	// later transactions carry lower hashes, block position must still win
	rem, err := remaining(t, h, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), rem)

	rec, err := h.Record(ctx, "Moves", helper.EntityID([]model.Felt{model.FeltFromUint64(1)}))
	require.NoError(t, err)
	chain.mu.Lock()
	last := chain.blocks[2].Transactions[2].Hash
	chain.mu.Unlock()
	assert.Equal(t, model.EventID(2, 2, last, 0), rec.EventID)
}

func TestEngine_FailureHoldsCursor(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1), setRecordEvent("Position", 1, 3, 0))
	chain.addBlock(setRecordEvent("Moves", 1, 9, 2))

	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	for i := 0; i < 2; i++ {
		next, err := e.SyncToHead(ctx, 0)
		require.ErrorIs(t, err, model.ErrUnknownModel)
		assert.Equal(t, uint64(1), next)
		assert.Equal(t, Idle, e.State())

		n, found := head(t, h)
		assert.True(t, found)
		assert.Equal(t, uint64(0), n)
		_, err = remaining(t, h, 1)
		assert.ErrorIs(t, err, model.ErrEntityNotFound)
	}

	evs, err := h.Events(ctx, nil, model.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), evs.TotalCount)
}

func TestEngine_ErrorReturnedUnchanged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	errBoom := errors.New("boom")

	ep := mocks.NewMockEventProcessor(ctrl)
	ep.EXPECT().EventKey().Return("Boom").AnyTimes()
	ep.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errBoom)
	observer := mocks.NewMockCommitObserver(ctrl)

	procs, err := registry.New([]interfaces.EventProcessor{ep}, nil, nil)
	require.NoError(t, err)

	chain := newFakeChain()
	chain.addBlock(model.Event{FromAddress: worldAddr, Keys: []model.Felt{helper.Selector("Boom")}})
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	cfg := config.Default()
	e, err := New(cfg, chain, schemas{}, h, procs, WithObservers(observer))
	require.NoError(t, err)

	next, err := e.SyncToHead(ctx, 0)
	assert.True(t, err == errBoom)
	assert.Equal(t, uint64(0), next)
	_, found := head(t, h)
	assert.False(t, found)
}

func TestEngine_SkipsUnmatchedEvents(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))

	foreign := setRecordEvent("Moves", 1, 10, 1)
	foreign.FromAddress = model.FeltFromUint64(0xdead)
	chain.addBlock(
		model.Event{FromAddress: worldAddr, Keys: []model.Felt{helper.Selector("Transfer")}},
		model.Event{FromAddress: worldAddr},
		foreign,
	)
	chain.addBlock()

	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	next, err := e.SyncToHead(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next)
	n, _ := head(t, h)
	assert.Equal(t, uint64(2), n)

	_, err = remaining(t, h, 1)
	assert.ErrorIs(t, err, model.ErrEntityNotFound)
	evs, err := h.Events(ctx, nil, model.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), evs.TotalCount)
}

func TestEngine_CaughtUp(t *testing.T) {
	chain := newFakeChain()
	chain.addBlock()
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	next, err := e.SyncToHead(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), next)
	assert.Equal(t, CaughtUp, e.State())
	_, found := head(t, h)
	assert.False(t, found)
}

func TestEngine_ObserversSeeCommitsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	observer := mocks.NewMockCommitObserver(ctrl)
	var summaries []model.CommitSummary
	observer.EXPECT().OnCommit(gomock.Any(), gomock.Any()).Do(func(_ context.Context, s model.CommitSummary) {
		summaries = append(summaries, s)
	}).Times(3)

	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1))
	chain.addBlock()
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h, WithObservers(observer))

	_, err := e.SyncToHead(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for i, s := range summaries {
		assert.Equal(t, uint64(i), s.Block)
	}
	require.Len(t, summaries[0].Models, 1)
	assert.Equal(t, "Moves", summaries[0].Models[0].Name)
	require.Len(t, summaries[1].Entities, 1)
	assert.Equal(t, "Moves", summaries[1].Entities[0].Record.Model)
	assert.Empty(t, summaries[2].Entities)
}

func TestEngine_BatchedReceipts(t *testing.T) {
	chain := &batchingChain{fakeChain: newFakeChain()}
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1), setRecordEvent("Moves", 2, 7, 3))
	chain.addBlock()
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	_, err := e.SyncToHead(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, chain.calls)

	rem, err := remaining(t, h, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rem)
}

func TestEngine_CancelledBeforeFirstBlock(t *testing.T) {
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	next, err := e.SyncToHead(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), next)
	_, found := head(t, h)
	assert.False(t, found)
}

func TestEngine_ProcessRange(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1))
	chain.addBlock(setRecordEvent("Moves", 1, 9, 2))
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	require.NoError(t, e.ProcessRange(ctx, 0, 1))
	n, _ := head(t, h)
	assert.Equal(t, uint64(1), n)
	rem, err := remaining(t, h, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rem)

	require.NoError(t, e.ProcessRange(ctx, 2, 100))
	n, _ = head(t, h)
	assert.Equal(t, uint64(2), n)
}

func TestEngine_StartFollowsChain(t *testing.T) {
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1))
	h := openDB(t, filepath.Join(t.TempDir(), "scribe.db"))
	e := newEngine(t, chain, h)

	done := make(chan error, 1)
	go func() { done <- e.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		n, found := head(t, h)
		return found && n == 1
	}, 5*time.Second, 10*time.Millisecond)

	chain.addBlock(setRecordEvent("Moves", 1, 4, 3))
	require.Eventually(t, func() bool {
		rem, err := remaining(t, h, 1)
		return err == nil && rem == 4
	}, 5*time.Second, 10*time.Millisecond)

	e.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestEngine_StartResumesFromCursor(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	chain.addBlock(registerEvent("Moves"))
	chain.addBlock(setRecordEvent("Moves", 1, 10, 1))
	path := filepath.Join(t.TempDir(), "scribe.db")
	h := openDB(t, path)
	e := newEngine(t, chain, h)
	_, err := e.SyncToHead(ctx, 0)
	require.NoError(t, err)

	next, err := e.resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)
}

type write struct {
	player    uint64
	remaining uint64
}

func TestEngine_ReplayIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	iteration := 0
	rapid.Check(t, func(rt *rapid.T) {
		iteration++
		blocks := rapid.SliceOfN(
			rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) write {
				return write{
					player:    rapid.Uint64Range(1, 3).Draw(rt, "player"),
					remaining: rapid.Uint64Range(0, 255).Draw(rt, "remaining"),
				}
			}), 0, 3), 1, 6).Draw(rt, "blocks")

		ctx := context.Background()
		chain := newFakeChain()
		chain.addBlock(registerEvent("Moves"))
		last := make(map[uint64]uint64)
		for _, ws := range blocks {
			events := make([]model.Event, len(ws))
			for i, w := range ws {
				events[i] = setRecordEvent("Moves", w.player, w.remaining, 0)
				last[w.player] = w.remaining
			}
			chain.addBlock(events...)
		}

		h := openDB(t, filepath.Join(dir, fmt.Sprintf("replay-%d.db", iteration)))
		e := newEngine(t, chain, h)
		next, err := e.SyncToHead(ctx, 0)
		require.NoError(rt, err)
		require.Equal(rt, uint64(len(blocks)+1), next)

		snapshot := func() map[uint64]uint64 {
			out := make(map[uint64]uint64)
			for p := uint64(1); p <= 3; p++ {
				rem, err := remaining(t, h, p)
				if errors.Is(err, model.ErrEntityNotFound) {
					continue
				}
				require.NoError(rt, err)
				out[p] = rem
			}
			return out
		}
		before := snapshot()
		require.Equal(rt, last, before)

		from := rapid.Uint64Range(0, uint64(len(blocks))).Draw(rt, "from")
		_, err = e.SyncToHead(ctx, from)
		require.NoError(rt, err)
		require.Equal(rt, before, snapshot())
		n, _ := head(t, h)
		require.Equal(rt, uint64(len(blocks)), n)
	})
}
