package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"scribe/helper"
	"scribe/interfaces"
	"scribe/mocks"
)

func eventProcessor(ctrl *gomock.Controller, key string) *mocks.MockEventProcessor {
	ep := mocks.NewMockEventProcessor(ctrl)
	ep.EXPECT().EventKey().Return(key).AnyTimes()
	return ep
}

func TestNew_IndexesBySelector(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := eventProcessor(ctrl, "ModelRegistered")
	b := eventProcessor(ctrl, "StoreSetRecord")

	p, err := New([]interfaces.EventProcessor{a, b}, nil, nil)
	require.NoError(t, err)

	got := p.EventProcessors(helper.Selector("StoreSetRecord"))
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
	assert.True(t, p.Handles(helper.Selector("ModelRegistered")))
	assert.False(t, p.Handles(helper.Selector("Transfer")))
	assert.Empty(t, p.EventProcessors(helper.Selector("Transfer")))
	assert.Equal(t, []string{"ModelRegistered", "StoreSetRecord"}, p.EventKeys())
}

func TestNew_RejectsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := New([]interfaces.EventProcessor{
		eventProcessor(ctrl, "StoreSetRecord"),
		eventProcessor(ctrl, "StoreSetRecord"),
	}, nil, nil)
	assert.ErrorContains(t, err, "duplicate event processor")

	bp := mocks.NewMockBlockProcessor(ctrl)
	_, err = New(nil, []interfaces.BlockProcessor{bp, bp}, nil)
	assert.ErrorContains(t, err, "registered twice")

	tp := mocks.NewMockTransactionProcessor(ctrl)
	_, err = New(nil, nil, []interfaces.TransactionProcessor{tp, mocks.NewMockTransactionProcessor(ctrl), tp})
	assert.Error(t, err)

	_, err = New(nil, []interfaces.BlockProcessor{nil}, nil)
	assert.Error(t, err)
}

func TestNew_KeepsRegistrationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockBlockProcessor(ctrl)
	second := mocks.NewMockBlockProcessor(ctrl)
	p, err := New(nil, []interfaces.BlockProcessor{first, second}, nil)
	require.NoError(t, err)
	require.Len(t, p.BlockProcessors(), 2)
	assert.Same(t, first, p.BlockProcessors()[0])
	assert.Same(t, second, p.BlockProcessors()[1])
}

func TestDefault(t *testing.T) {
	p, err := Default(Options{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ModelRegistered", "StoreSetRecord", "MetadataUpdate"}, p.EventKeys())
	assert.Empty(t, p.BlockProcessors())
	assert.Len(t, p.TransactionProcessors(), 1)

	ctrl := gomock.NewController(t)
	p, err = Default(Options{Points: mocks.NewMockPointWriter(ctrl)})
	require.NoError(t, err)
	assert.Len(t, p.BlockProcessors(), 1)
}
