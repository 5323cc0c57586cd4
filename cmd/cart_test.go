package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCart(t *testing.T) {
	c := entity.NewCart(entity.CartLine{
		Product:  entity.Product{ID: "A", Name: "Camiseta", Price: decimal.NewFromInt(100)},
		Size:     "M",
		Quantity: 2,
	})

	var buf bytes.Buffer
	require.NoError(t, printCart(&buf, c))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 2, got["badge"])
	assert.Len(t, got["lines"], 1)
}

func TestCartCommands_ShowAndClear(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "storage:\n  backend: sqlite\n  sqlite_path: " + filepath.Join(dir, "cart.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH_STOREFRONT", cfgPath)

	run := func(args ...string) string {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	out := run("cart", "show", "--session", "alice")
	assert.Contains(t, out, `"badge": 0`)

	out = run("cart", "clear", "--session", "alice")
	assert.Equal(t, "cleared miTienda_carrito:alice\n", out)

	out = run("cart", "purge", "--session", "alice")
	assert.Equal(t, "purged miTienda_carrito:alice\n", out)
}
