package common

import (
	"fmt"
	"log"
	"strconv"

	"blackLedger/models"

	"gorm.io/gorm"
)

// LogError prints err and stores it as an ErrorLog row tagged with source.
func LogError(db *gorm.DB, source string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", source, err)
	if db == nil {
		return
	}

	errLog := models.ErrorLog{
		Source:  source,
		Message: fmt.Sprintf("%v", err),
	}
	if dbErr := db.Create(&errLog).Error; dbErr != nil {
		log.Printf("Error saving error log: %v", dbErr)
	}
}

func FormatOdds(odds float64) string {
	response := ""

	if odds == float64(int(odds)) {
		response = strconv.Itoa(int(odds))
	} else {
		response = fmt.Sprintf("%.1f", odds)
	}

	if odds > 0 {
		return fmt.Sprintf("+%s", response)
	}
	return response
}

// CalculateParlayOddsMultiplier returns the combined decimal odds of a set of
// American-format prices. Unparseable prices count as DefaultDecimalOdds.
func CalculateParlayOddsMultiplier(oddsList []string) float64 {
	multiplier := 1.0
	for _, odds := range oddsList {
		multiplier *= DecimalOrDefault(odds)
	}
	return multiplier
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}
