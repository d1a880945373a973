package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dukatech/netstore-backend/internal/app/model"
)

// Converts a product listing spreadsheet into the catalog JSON file the
// server reads. Expected columns: id, name, brand, price, old_price, status,
// image. The first row is the header.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <output_json_path>")
	}

	xlsxPath := os.Args[1]
	outputPath := os.Args[2]

	fmt.Printf("Reading XLSX file: %s\n", xlsxPath)
	products, err := readProductsFromXLSX(xlsxPath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to export: %d\n", len(products))

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode catalog:", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatal("Failed to write catalog file:", err)
	}

	fmt.Printf("Catalog written to %s\n", outputPath)
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenIDs := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 7 {
			skippedCount++
			continue
		}

		id := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		brand := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		oldPriceStr := strings.TrimSpace(row[4])
		status := model.StockStatus(strings.TrimSpace(row[5]))
		image := strings.TrimSpace(row[6])

		if id == "" || name == "" || priceStr == "" {
			skippedCount++
			continue
		}

		if seenIDs[id] {
			fmt.Printf("Skipping duplicate product ID on row %d: %s\n", i+1, id)
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+1, priceStr)
			skippedCount++
			continue
		}

		if !model.ValidStockStatus(status) {
			fmt.Printf("Skipping row %d: unknown status %q\n", i+1, status)
			skippedCount++
			continue
		}

		var oldPrice *float64
		if oldPriceStr != "" {
			parsed, err := strconv.ParseFloat(oldPriceStr, 64)
			if err != nil {
				fmt.Printf("Skipping row %d: invalid old price %q\n", i+1, oldPriceStr)
				skippedCount++
				continue
			}
			oldPrice = &parsed
		}

		seenIDs[id] = true
		products = append(products, model.Product{
			ID:       id,
			Name:     name,
			Brand:    brand,
			Price:    price,
			OldPrice: oldPrice,
			Status:   status,
			Image:    image,
		})
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d rows\n", skippedCount)
	}

	return products, nil
}
