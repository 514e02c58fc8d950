package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp CSV: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	csvData := `id,name,description,price,store,categories,image_url,price_date
1,Whole Milk,Dairy milk 2L,4.99,Walmart,"dairy,beverages",http://img/1.png,2025-08-01
2,Whole Wheat Bread,Sliced loaf,2.50,Loblaws,bakery,http://img/2.png,2025-08-01
`

	store := NewStore()
	path := writeTempCSV(t, csvData)
	if err := store.LoadCSV(path); err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", store.Count())
	}

	milk := store.ItemsByID(1)
	if len(milk) != 1 {
		t.Fatalf("ItemsByID(1) returned %d items", len(milk))
	}
	if milk[0].Name != "Whole Milk" || milk[0].CurrentPrice != 4.99 || milk[0].Store != "Walmart" {
		t.Errorf("unexpected item: %+v", milk[0])
	}
	if len(milk[0].CategoryTags) != 2 || milk[0].CategoryTags[0] != "dairy" || milk[0].CategoryTags[1] != "beverages" {
		t.Errorf("CategoryTags = %v, want [dairy beverages]", milk[0].CategoryTags)
	}
}

func TestLoadCSV_SkipsMalformedRows(t *testing.T) {
	csvData := `id,name,description,price,store,categories,image_url,price_date
1,Whole Milk,Dairy milk 2L,4.99,Walmart,dairy,http://img/1.png,2025-08-01
not-a-number,Bad Id,desc,1.00,Walmart,misc,http://img/x.png,2025-08-01
2,Bad Price,desc,abc,Walmart,misc,http://img/x.png,2025-08-01
3,Negative Price,desc,-1.50,Walmart,misc,http://img/x.png,2025-08-01
4,Empty Store,desc,1.00,,misc,http://img/x.png,2025-08-01
5,Short Row,desc,1.00
6,Dish Soap,Lemon scented,3.29,Costco,cleaning,http://img/6.png,2025-08-01
`

	store := NewStore()
	if err := store.LoadCSV(writeTempCSV(t, csvData)); err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if store.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (malformed rows skipped)", store.Count())
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	store := NewStore()
	if err := store.LoadCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("LoadCSV() on missing file returned nil error")
	}
}
