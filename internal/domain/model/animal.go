// Пакет model — транспортные структуры ресурсов REST API Hometail.
// Плоские записи, зеркалящие ответы бэкенда; используются только
// для (де)сериализации на границе. Неизвестные поля ответов игнорируются.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// Допустимые значения пола животного (канон бэкенда).
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Допустимые значения размера животного.
const (
	SizeSmall      = "SMALL"
	SizeMedium     = "MEDIUM"
	SizeLarge      = "LARGE"
	SizeExtraLarge = "EXTRA_LARGE"
)

// Animal — животное из каталога.
// Даты ходят строками yyyy-MM-dd (types.Date), никогда числовыми timestamp.
type Animal struct {
	ID               *int64      `json:"id,omitempty"`
	Name             string      `json:"name,omitempty"`
	CategoryID       *int64      `json:"categoryId,omitempty"`
	Category         string      `json:"category,omitempty"`
	CategoryName     string      `json:"categoryName,omitempty"`
	BreedID          *int64      `json:"breedId,omitempty"`
	Breed            string      `json:"breed,omitempty"`
	BreedName        string      `json:"breedName,omitempty"`
	Gender           string      `json:"gender,omitempty"`
	Size             string      `json:"size,omitempty"`
	ShortDescription string      `json:"shortDescription,omitempty"`
	LongDescription  string      `json:"longDescription,omitempty"`
	Adopted          bool        `json:"adopted"`
	Image            string      `json:"image,omitempty"`
	OwnerID          *int64      `json:"ownerId,omitempty"`
	OwnerName        string      `json:"ownerName,omitempty"`
	OwnerEmail       string      `json:"ownerEmail,omitempty"`
	OwnerPhone       string      `json:"ownerPhone,omitempty"`
	Birthday         *types.Date `json:"birthday,omitempty"`
	AgeDescription   string      `json:"ageDescription,omitempty"`
}

// DisplayCategory возвращает имя категории: бэкенд в разных ответах
// заполняет либо categoryName, либо category.
func (a *Animal) DisplayCategory() string {
	if a.CategoryName != "" {
		return a.CategoryName
	}
	return a.Category
}

// DisplayBreed возвращает имя породы (breedName либо breed).
func (a *Animal) DisplayBreed() string {
	if a.BreedName != "" {
		return a.BreedName
	}
	return a.Breed
}

// AgeParts раскладывает возраст на календарные годы, месяцы и дни
// между birthday и now.
func AgeParts(birthday, now time.Time) (years, months, days int) {
	years = now.Year() - birthday.Year()
	months = int(now.Month()) - int(birthday.Month())
	days = now.Day() - birthday.Day()

	if days < 0 {
		// Занимаем дни из предыдущего месяца now
		prevMonthEnd := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
		days += prevMonthEnd.Day()
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	return years, months, days
}

// AgeInDays возвращает приближённый возраст в днях для сортировки:
// годы*365 + месяцы*30 + дни. Неизвестная дата рождения — math.MaxInt32,
// чтобы такие записи уходили в конец при сортировке по возрастанию.
func (a *Animal) AgeInDays(now time.Time) int {
	if a.Birthday == nil {
		return math.MaxInt32
	}
	years, months, days := AgeParts(a.Birthday.Time, now)
	return years*365 + months*30 + days
}

// EnsureAgeDescription заполняет AgeDescription, если бэкенд его не прислал:
// «N year(s)» / «N month(s)» / «N day(s)», либо «Unknown» без даты рождения.
// Текст английский — это данные в терминах бэкенда, не текст интерфейса.
func (a *Animal) EnsureAgeDescription(now time.Time) {
	if a.AgeDescription != "" {
		return
	}
	if a.Birthday == nil {
		a.AgeDescription = "Unknown"
		return
	}

	years, months, days := AgeParts(a.Birthday.Time, now)
	switch {
	case years > 0:
		a.AgeDescription = fmt.Sprintf("%d %s", years, plural(years, "year"))
	case months > 0:
		a.AgeDescription = fmt.Sprintf("%d %s", months, plural(months, "month"))
	default:
		a.AgeDescription = fmt.Sprintf("%d %s", days, plural(days, "day"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
