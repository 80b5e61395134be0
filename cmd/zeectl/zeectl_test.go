package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestQuoteStandardRules(t *testing.T) {
	path := writeFile(t, "quote.yaml", `
rules:
  - minOrderValue: "0"
    charge: "40"
    isActive: true
  - minOrderValue: "500"
    charge: "0"
items:
  - quantity: 2
    unitPrice: "150.00"
`)
	out, err := execute(t, "quote", path)
	require.NoError(t, err)

	var got quoteOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "300.00", got.Subtotal)
	assert.Equal(t, "40.00", got.ShippingCharge)
	assert.Equal(t, "340.00", got.Total)
	assert.Empty(t, got.RuleProblems)
}

func TestQuoteFreeShippingThreshold(t *testing.T) {
	path := writeFile(t, "quote.yaml", `
rules:
  - {minOrderValue: "0", charge: "40"}
  - {minOrderValue: "500", charge: "0"}
items:
  - {quantity: 1, unitPrice: "500"}
`)
	out, err := execute(t, "quote", path)
	require.NoError(t, err)

	var got quoteOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0.00", got.ShippingCharge)
	assert.Equal(t, "500.00", got.Total)
}

func TestQuoteWithoutFallbackRule(t *testing.T) {
	path := writeFile(t, "quote.yaml", `
rules:
  - {minOrderValue: "200", charge: "30"}
items:
  - {quantity: 1, unitPrice: "150"}
`)
	_, err := execute(t, "quote", path)
	var ruleErr *pricing.InvalidRuleSetError
	assert.True(t, errors.As(err, &ruleErr))
}

func TestQuoteBadAmount(t *testing.T) {
	path := writeFile(t, "quote.yaml", `
items:
  - {quantity: 1, unitPrice: "twelve"}
`)
	_, err := execute(t, "quote", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1: unitPrice")
}

func TestTokenIsAcceptedByAuth(t *testing.T) {
	out, err := execute(t, "token", "--secret", "cli-secret", "--user", "u-42", "--role", "admin")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	utils.SetSecret("cli-secret")
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	claims, err := utils.ExtractClaims(req)
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenRejectsNonPositiveTTL(t *testing.T) {
	_, err := execute(t, "token", "--secret", "s", "--ttl", "0s")
	assert.Error(t, err)
}

func TestCompressWritesOutput(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(10, 10, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	input := filepath.Join(t.TempDir(), "banner.png")
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0o644))

	out, err := execute(t, "compress", input, "--format", "jpeg", "--max-dim", "100")
	require.NoError(t, err)

	dest := strings.TrimSuffix(input, ".png") + ".jpg"
	assert.Contains(t, out, dest)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestCompressRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "compress", "whatever.png", "--format", "avif")
	assert.Error(t, err)
}
