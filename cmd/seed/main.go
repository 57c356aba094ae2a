// Bulk product import from an XLSX catalog sheet.
//
// Expected columns: name, categories (semicolon separated), description,
// price, original price (optional), seller tag, delivery date, image URLs
// (semicolon separated). The first row is treated as a header.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kdas/shopkart-backend/config"
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped %d invalid rows)\n", len(products), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range products {
		// Created one at a time so each product gets its legacy id
		// allocated through the repository.
		if err := productRepo.Create(&products[i]); err != nil {
			fmt.Printf("Failed to import %q: %v\n", products[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Printf("Import completed: %d products imported\n", imported)
}

func readProductsFromXLSX(filePath string) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 || strings.TrimSpace(row[0]) == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil || price < 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+1, row[3])
			skipped++
			continue
		}

		product := model.Product{
			Name:        strings.TrimSpace(row[0]),
			Categories:  splitList(cell(row, 1)),
			Description: cell(row, 2),
			Price:       price,
			SellerTag:   cell(row, 5),
			DateAdded:   time.Now(),
		}
		if original := strings.TrimSpace(cell(row, 4)); original != "" {
			if value, err := strconv.ParseFloat(original, 64); err == nil {
				product.OriginalPrice = &value
			}
		}
		if delivery := cell(row, 6); delivery != "" {
			product.DeliveryDate = delivery
		}
		product.Images = splitList(cell(row, 7))

		products = append(products, product)
	}

	return products, skipped, nil
}

func cell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
