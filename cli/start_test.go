package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"scribe/mocks"
)

func TestRunEngine_RestartsAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockCore(ctrl)

	gomock.InOrder(
		engine.EXPECT().Start(gomock.Any()).Return(errors.New("block 5: boom")),
		engine.EXPECT().Start(gomock.Any()).Return(nil),
	)
	engine.EXPECT().Stop()

	assert.NoError(t, runEngine(context.Background(), engine, 0))
}

func TestRunEngine_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockCore(ctrl)

	errBoom := errors.New("boom")
	engine.EXPECT().Start(gomock.Any()).Return(errBoom).MinTimes(1)
	engine.EXPECT().Stop()

	assert.ErrorIs(t, runEngine(context.Background(), engine, time.Millisecond), errBoom)
}

func TestRunEngine_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockCore(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	engine.EXPECT().Start(gomock.Any()).DoAndReturn(func(context.Context) error {
		cancel()
		return errors.New("interrupted")
	})
	engine.EXPECT().Stop()

	assert.NoError(t, runEngine(ctx, engine, 0))
}
