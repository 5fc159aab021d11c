package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"scribe/mocks"
	"scribe/model"
)

var testBlock = &model.Block{
	Number:    7,
	Hash:      model.FeltFromUint64(0x77),
	Timestamp: 1700000000,
	Transactions: []model.Transaction{
		{Hash: model.FeltFromUint64(0xabc), Type: "INVOKE"},
	},
}

func movesSchema() model.Ty {
	return model.StructTy("Moves",
		model.Member{Name: "player", Key: true, Ty: model.PrimitiveTy(model.ContractAddress)},
		model.Member{Name: "remaining", Ty: model.PrimitiveTy(model.U8)},
		model.Member{Name: "last_direction", Ty: model.UnitEnumTy("Direction", "None", "Left", "Right", "Up", "Down")},
	)
}

func felts(vs ...uint64) []model.Felt {
	out := make([]model.Felt, len(vs))
	for i, v := range vs {
		out[i] = model.FeltFromUint64(v)
	}
	return out
}

func TestModelRegisteredHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	world := mocks.NewMockWorldReader(ctrl)
	storage := mocks.NewMockStorage(ctrl)
	ctx := context.Background()
	classHash := model.FeltFromUint64(0x111)

	world.EXPECT().ModelSchema(gomock.Any(), "Moves", classHash).Return(movesSchema(), nil)
	storage.EXPECT().RegisterModel(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Model) error {
		assert.Equal(t, "Moves", m.Name)
		assert.Equal(t, classHash, m.ClassHash)
		assert.Equal(t, "ev1", m.EventID)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), m.CreatedAt)
		return nil
	})

	h := &ModelRegisteredHandler{}
	assert.Equal(t, "ModelRegistered", h.EventKey())
	ev := model.Event{Data: []model.Felt{model.MustShortString("Moves"), classHash}}
	require.NoError(t, h.Process(ctx, world, storage, testBlock, nil, "ev1", ev))
}

func TestModelRegisteredHandler_NameMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	world := mocks.NewMockWorldReader(ctrl)
	storage := mocks.NewMockStorage(ctrl)

	world.EXPECT().ModelSchema(gomock.Any(), "Moves", gomock.Any()).
		Return(model.StructTy("Position", model.Member{Name: "id", Key: true, Ty: model.PrimitiveTy(model.U32)}), nil)

	ev := model.Event{Data: []model.Felt{model.MustShortString("Moves"), model.FeltOne}}
	err := (&ModelRegisteredHandler{}).Process(context.Background(), world, storage, testBlock, nil, "ev1", ev)
	assert.ErrorContains(t, err, "world declares Position")
}

func TestModelRegisteredHandler_MalformedData(t *testing.T) {
	ctrl := gomock.NewController(t)
	ev := model.Event{Data: []model.Felt{model.MustShortString("Moves")}}
	err := (&ModelRegisteredHandler{}).Process(context.Background(), mocks.NewMockWorldReader(ctrl),
		mocks.NewMockStorage(ctrl), testBlock, nil, "ev1", ev)
	var decodeErr *model.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestStoreSetRecordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)
	ctx := context.Background()

	storage.EXPECT().Model(gomock.Any(), "Moves").Return(model.Model{Name: "Moves", Version: 1, Schema: movesSchema()}, nil)
	storage.EXPECT().SetEntity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w model.EntityWrite) error {
		assert.Equal(t, "Moves", w.Model)
		assert.Equal(t, felts(0x1), w.Keys)
		s := w.Value.Struct
		assert.Equal(t, uint64(1), s.Children[0].Ty.Primitive.Uint64())
		assert.Equal(t, uint64(10), s.Children[1].Ty.Primitive.Uint64())
		sel, ok := s.Children[2].Ty.Enum.Selected()
		require.True(t, ok)
		assert.Equal(t, "Right", sel.Name)
		return nil
	})

	h := &StoreSetRecordHandler{}
	data := append([]model.Felt{model.MustShortString("Moves")}, felts(1, 0x1, 0, 2, 10, 2)...)
	require.NoError(t, h.Process(ctx, nil, storage, testBlock, nil, "ev1", model.Event{Data: data}))
}

func TestStoreSetRecordHandler_UnknownModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)
	storage.EXPECT().Model(gomock.Any(), "Moves").Return(model.Model{}, model.ErrModelNotFound)

	data := append([]model.Felt{model.MustShortString("Moves")}, felts(1, 0x1, 0, 2, 10, 2)...)
	err := (&StoreSetRecordHandler{}).Process(context.Background(), nil, storage, testBlock, nil, "ev1", model.Event{Data: data})
	assert.ErrorIs(t, err, model.ErrUnknownModel)
}

func TestStoreSetRecordHandler_DecodeErrors(t *testing.T) {
	cases := map[string][]model.Felt{
		"keys overrun":    felts(5, 1),
		"missing offset":  felts(1, 1),
		"partial write":   felts(1, 1, 3, 2, 10, 2),
		"values short":    felts(1, 1, 0, 1, 10),
		"value overflow":  felts(1, 1, 0, 2, 300, 2),
		"extra value":     felts(1, 1, 0, 3, 10, 2, 9),
		"two keys":        felts(2, 1, 2, 0, 2, 10, 2),
		"bad enum option": felts(1, 1, 0, 2, 10, 9),
	}
	for name, tail := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			storage := mocks.NewMockStorage(ctrl)
			storage.EXPECT().Model(gomock.Any(), "Moves").Return(model.Model{Name: "Moves", Schema: movesSchema()}, nil).MaxTimes(1)

			data := append([]model.Felt{model.MustShortString("Moves")}, tail...)
			err := (&StoreSetRecordHandler{}).Process(context.Background(), nil, storage, testBlock, nil, "ev1", model.Event{Data: data})
			var decodeErr *model.DecodeError
			assert.True(t, errors.As(err, &decodeErr), "got %v", err)
		})
	}
}

func TestMetadataUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)
	resource := model.FeltFromUint64(0x42)
	storage.EXPECT().SetMetadata(gomock.Any(), resource, "ipfs://QmWorld", "ev1", time.Unix(1700000000, 0).UTC()).Return(nil)

	data := []model.Felt{resource, model.FeltFromUint64(2), model.MustShortString("ipfs://"), model.MustShortString("QmWorld")}
	h := &MetadataUpdateHandler{}
	assert.Equal(t, "MetadataUpdate", h.EventKey())
	require.NoError(t, h.Process(context.Background(), nil, storage, testBlock, nil, "ev1", model.Event{Data: data}))
}

func TestTransactionRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorage(ctrl)
	storage.EXPECT().StoreTransaction(gomock.Any(), testBlock, testBlock.Transactions[0]).Return(nil)

	r := &TransactionRecorder{}
	require.NoError(t, r.Process(context.Background(), storage, nil, testBlock, &model.Receipt{TransactionHash: model.FeltFromUint64(0xabc)}))

	err := r.Process(context.Background(), storage, nil, testBlock, &model.Receipt{TransactionHash: model.FeltFromUint64(0xdef)})
	assert.Error(t, err)
}

func TestBlockStatsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	points := mocks.NewMockPointWriter(ctrl)
	points.EXPECT().WritePoint(gomock.Any(), BlockStatsMeasurement, gomock.Any(), gomock.Any(), testBlock.Time()).
		DoAndReturn(func(_ context.Context, _ string, tags map[string]string, fields map[string]interface{}, _ time.Time) error {
			assert.Equal(t, "0x77", tags["hash"])
			assert.Equal(t, 1, fields["transactions"])
			return errors.New("influx unavailable")
		})

	h := &BlockStatsHandler{Points: points}
	require.NoError(t, h.Process(context.Background(), nil, nil, testBlock), "stats failures never fail the block")
	assert.Equal(t, uint64(7), h.BlockNumber())
}
