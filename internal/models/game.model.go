package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the wire format for release dates.
const DateLayout = "2006-01-02"

// Date is a date-only value. It marshals as "YYYY-MM-DD" and stores as a
// DATE column.
type Date time.Time

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected %s", value, DateLayout)
	}
	return Date(t), nil
}

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %s, expected quoted %s", data, DateLayout)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return time.Time(d), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*d = Date(time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC))
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (Date) GormDataType() string {
	return "date"
}

// Game is keyed by name; renaming a game is delete + create.
type Game struct {
	Name        string                      `gorm:"type:text;primaryKey"       json:"name"`
	ReleaseDate Date                        `gorm:"type:date;index;not null"   json:"release_date"`
	Studio      string                      `gorm:"type:text;index;not null"   json:"studio"`
	Ratings     int                         `gorm:"type:integer;index;not null" json:"ratings"`
	Platforms   datatypes.JSONSlice[string] `gorm:"not null"                   json:"platforms"`
}

func (Game) TableName() string {
	return "games"
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.Name == "" {
		return gorm.ErrInvalidValue
	}
	if g.Studio == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

func (g *Game) BeforeUpdate(tx *gorm.DB) (err error) {
	if g.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
