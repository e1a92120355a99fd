package main

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	"elearn/models/course"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%1000 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		title := getField(row, headerIndex, "title")
		lecturerEmail := getField(row, headerIndex, "lecturerEmail")
		categorySlug := getField(row, headerIndex, "categorySlug")

		// Skip if no title or lecturer
		if title == "" || lecturerEmail == "" {
			skipped++
			continue
		}

		var lecturer models.User
		if err := database.Database.Db.Where("email = ? AND role = ? AND is_deleted = false", lecturerEmail, "LECTURER").First(&lecturer).Error; err != nil {
			log.Printf("Unknown lecturer %s for course %s, skipping", lecturerEmail, title)
			skipped++
			continue
		}

		categoryID := upsertCategory(categorySlug, getField(row, headerIndex, "categoryName"))
		if categoryID == 0 {
			log.Printf("No category for course %s, skipping", title)
			skipped++
			continue
		}

		crs := course.Course{
			Title:       title,
			Description: getField(row, headerIndex, "description"),
			LecturerID:  lecturer.ID,
			CategoryID:  categoryID,
			Price:       parseFloat(getField(row, headerIndex, "price")),
			Status:      "ACTIVE",
			IsPublished: parseBool(getField(row, headerIndex, "published")),
			IsDeleted:   false,
		}

		// Check if the course exists by title + lecturer
		var existing course.Course
		result := database.Database.Db.Where("title = ? AND lecturer_id = ? AND is_deleted = false", crs.Title, crs.LecturerID).First(&existing)

		if result.Error != nil {
			// Insert new course
			if err := database.Database.Db.Create(&crs).Error; err != nil {
				log.Printf("Error inserting course %s: %v", crs.Title, err)
				continue
			}
			inserted++
		} else {
			// Update existing course
			existing.Description = crs.Description
			existing.CategoryID = crs.CategoryID
			existing.Price = crs.Price
			existing.IsPublished = crs.IsPublished

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %s: %v", crs.Title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

// upsertCategory returns the id for the slug, creating the row when missing
func upsertCategory(slug, name string) uint {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return 0
	}

	var category models.Category
	if err := database.Database.Db.Where("slug = ? AND is_deleted = false", slug).First(&category).Error; err == nil {
		return category.ID
	}

	if name == "" {
		name = slug
	}
	category = models.Category{Name: name, Slug: slug, IsActive: true}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		log.Printf("Error creating category %s: %v", slug, err)
		return 0
	}
	return category.ID
}

func getField(row []string, headerIndex map[string]int, field string) string {
	idx, ok := headerIndex[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
