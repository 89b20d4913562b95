package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	cfg := config.DefaultConfig()
	calls := 0
	lf := func(_ *config.Config, key string) (any, error) {
		calls++
		return key + "!", nil
	}
	v, err := Load(cfg, "foo", lf)
	is.NoErr(err)
	is.Equal(v, "foo!")
	v, err = Load(cfg, "foo", lf)
	is.NoErr(err)
	is.Equal(v, "foo!")
	is.Equal(calls, 1)
}

func TestLoadErrorNotCached(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	cfg := config.DefaultConfig()
	boom := errors.New("boom")
	_, err := Load(cfg, "bad", func(*config.Config, string) (any, error) { return nil, boom })
	is.True(errors.Is(err, boom))
	v, err := Load(cfg, "bad", func(*config.Config, string) (any, error) { return 1, nil })
	is.NoErr(err)
	is.Equal(v, 1)
}

func TestLoadMapSharesIdenticalContents(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.map")
	b := filepath.Join(dir, "b.map")
	is.NoErr(os.WriteFile(a, []byte(board.Corridor), 0o644))
	is.NoErr(os.WriteFile(b, []byte(board.Corridor), 0o644))

	ba, err := LoadMap(cfg, a)
	is.NoErr(err)
	bb, err := LoadMap(cfg, b)
	is.NoErr(err)
	is.True(ba == bb)
	is.True(ba.Equal(board.MustParse(board.Corridor)))
}

func TestLoadMapParseError(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "bad.map")
	is.NoErr(os.WriteFile(path, []byte("#Q#\n"), 0o644))
	_, err := LoadMap(cfg, path)
	is.True(errors.Is(err, board.ErrIllegalCharacter))
}
