package domain

type Classification struct {
	ID   string `db:"classification_id" json:"classification_id"`
	Name string `db:"classification_name" json:"classification_name"`
}

type Vehicle struct {
	ID                 string  `db:"inv_id" json:"inv_id"`
	ClassificationID   string  `db:"classification_id" json:"classification_id"`
	ClassificationName string  `db:"classification_name" json:"classification_name,omitempty"`
	Make               string  `db:"inv_make" json:"inv_make"`
	Model              string  `db:"inv_model" json:"inv_model"`
	Year               int     `db:"inv_year" json:"inv_year"`
	Description        string  `db:"inv_description" json:"inv_description"`
	Image              string  `db:"inv_image" json:"inv_image"`
	Thumbnail          string  `db:"inv_thumbnail" json:"inv_thumbnail"`
	Price              float64 `db:"inv_price" json:"inv_price"`
	Miles              int     `db:"inv_miles" json:"inv_miles"`
	Color              string  `db:"inv_color" json:"inv_color"`
	CreatedAt          string  `db:"created_at" json:"-"`
}
