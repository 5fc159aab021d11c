package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/model"
)

func movesSchema() model.Ty {
	return model.StructTy("Moves",
		model.Member{Name: "player", Key: true, Ty: model.PrimitiveTy(model.ContractAddress)},
		model.Member{Name: "remaining", Ty: model.PrimitiveTy(model.U8)},
	)
}

func positionSchema() model.Ty {
	return model.StructTy("Position",
		model.Member{Name: "player", Key: true, Ty: model.PrimitiveTy(model.ContractAddress)},
		model.Member{Name: "vec", Ty: model.TupleTy(model.PrimitiveTy(model.U32), model.PrimitiveTy(model.U32))},
	)
}

func writeManifest(t *testing.T, path string, decls ...Declaration) {
	t.Helper()
	data, err := json.Marshal(manifestFile{Models: decls})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestParser_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "world.json"),
		Declaration{Name: "Moves", ClassHash: model.FeltFromUint64(0x111), Schema: movesSchema()},
		Declaration{Name: "Position", ClassHash: model.FeltFromUint64(0x222), Schema: positionSchema()},
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	p := NewParser(dir)
	require.NoError(t, p.Load())
	assert.Equal(t, []string{"Moves", "Position"}, p.Names())

	got, err := p.ModelSchema(ctx, "Moves", model.FeltFromUint64(0x111))
	require.NoError(t, err)
	assert.Equal(t, "Moves", got.Name())
	assert.Len(t, got.Struct.Children, 2)

	// unknown class hash falls back to the name
	got, err = p.ModelSchema(ctx, "Position", model.FeltFromUint64(0x999))
	require.NoError(t, err)
	assert.Equal(t, "Position", got.Name())

	_, err = p.ModelSchema(ctx, "Moves", model.FeltFromUint64(0x222))
	assert.Error(t, err)

	_, err = p.ModelSchema(ctx, "Health", model.FeltFromUint64(0x333))
	assert.ErrorIs(t, err, ErrNotDeclared)
}

func TestParser_ReturnsCopies(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "world.json"),
		Declaration{Name: "Moves", ClassHash: model.FeltFromUint64(0x111), Schema: movesSchema()})
	p := NewParser(dir)
	require.NoError(t, p.Load())

	first, err := p.ModelSchema(context.Background(), "Moves", model.FeltFromUint64(0x111))
	require.NoError(t, err)
	first.Struct.Children[1].Name = "changed"

	second, err := p.ModelSchema(context.Background(), "Moves", model.FeltFromUint64(0x111))
	require.NoError(t, err)
	assert.Equal(t, "remaining", second.Struct.Children[1].Name)
}

func TestParser_RejectsInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
	}{
		{"name mismatch", Declaration{Name: "Other", Schema: movesSchema()}},
		{"no keys", Declaration{Name: "Flat", Schema: model.StructTy("Flat",
			model.Member{Name: "v", Ty: model.PrimitiveTy(model.U8)})}},
		{"not a struct", Declaration{Name: "Bare", Schema: model.PrimitiveTy(model.U8)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, filepath.Join(dir, "world.json"), tt.decl)
			assert.Error(t, NewParser(dir).Load())
		})
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600))
	assert.Error(t, NewParser(dir).Load())
}

func TestParser_Watch(t *testing.T) {
	dir := t.TempDir()
	p := NewParser(dir)
	require.NoError(t, p.Load())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx) }()

	// the watcher is registered asynchronously, keep rewriting until seen
	path := filepath.Join(dir, "late.json")
	require.Eventually(t, func() bool {
		writeManifest(t, path, Declaration{Name: "Moves", ClassHash: model.FeltFromUint64(0x111), Schema: movesSchema()})
		_, err := p.ModelSchema(context.Background(), "Moves", model.FeltFromUint64(0x111))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
