package models

// explicit join model so the genre links get their own cascade rules
type TitleGenre struct {
	TitleID int64 `json:"title_id" gorm:"primaryKey;index;not null;constraint:OnDelete:CASCADE;"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey;index;not null;constraint:OnDelete:CASCADE;"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
