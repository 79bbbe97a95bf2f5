package scanner

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return NewScannerWithFS(fs), fs
}

func TestNewScannerWithFS_NilProvider(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil filesystem")
		}
	}()
	NewScannerWithFS(nil)
}

func TestScanDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("data/sales.csv", "a\n1\n")
	fs.AddFile("data/Purchases.csv", "a\n1\n")
	fs.AddFile("data/purchase_prices.CSV", "a\n1\n")
	fs.AddFile("data/readme.txt", "ignore me")
	fs.AddFile("data/archive/old.csv", "a\n1\n")
	fs.AddFile("data/.csv", "")

	files, err := s.ScanDirectory("data")
	require.NoError(t, err)

	var names, tables []string
	for _, f := range files {
		names = append(names, f.Name)
		tables = append(tables, f.TableName)
	}
	assert.Equal(t, []string{"Purchases.csv", "purchase_prices.CSV", "sales.csv"}, names)
	assert.Equal(t, []string{"Purchases", "purchase_prices", "sales"}, tables)
	assert.Equal(t, filepath.Join("data", "sales.csv"), files[2].Path)
	assert.Equal(t, int64(4), files[2].SizeBytes)
}

func TestScanDirectory_Empty(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddDir("data")

	files, err := s.ScanDirectory("data")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanDirectory_Missing(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ScanDirectory("data")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vendorsum.ErrInvalidConfig))
}

func TestScanDirectory_NotADirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("data", "oops")

	_, err := s.ScanDirectory("data")
	assert.True(t, errors.Is(err, vendorsum.ErrInvalidConfig))
}

func TestIsSeedFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"orders.csv", true},
		{"ORDERS.CSV", true},
		{"orders.Csv", true},
		{".csv", false},
		{"orders.csv.bak", false},
		{"orders.tsv", false},
		{"csv", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSeedFile(tt.name))
		})
	}
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "orders", TableName("orders.csv"))
	assert.Equal(t, "vendor_invoice", TableName("vendor_invoice.CSV"))
	assert.Equal(t, "my.data", TableName("my.data.csv"))
}
