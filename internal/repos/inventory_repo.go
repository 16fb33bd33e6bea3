package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"motortrade/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const vehicleCols = `
  i.inv_id, i.classification_id, c.classification_name,
  i.inv_make, i.inv_model, i.inv_year, COALESCE(i.inv_description,'') AS inv_description,
  COALESCE(i.inv_image,'') AS inv_image, COALESCE(i.inv_thumbnail,'') AS inv_thumbnail,
  i.inv_price, i.inv_miles, COALESCE(i.inv_color,'') AS inv_color, COALESCE(i.created_at,'') AS created_at`

// Get returns one vehicle with its classification name. sql.ErrNoRows
// passes through for unknown ids.
func (r *InventoryRepo) Get(invID string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.Get(&v, r.db.Rebind(`
		SELECT `+vehicleCols+`
		FROM inventory i JOIN classification c ON c.classification_id = i.classification_id
		WHERE i.inv_id = ?
	`), invID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *InventoryRepo) ListAll() ([]domain.Vehicle, error) {
	out := []domain.Vehicle{}
	err := r.db.Select(&out, `
		SELECT `+vehicleCols+`
		FROM inventory i JOIN classification c ON c.classification_id = i.classification_id
		ORDER BY c.classification_name, i.inv_make, i.inv_model
	`)
	return out, err
}

func (r *InventoryRepo) ListByClassification(classificationID string) ([]domain.Vehicle, error) {
	out := []domain.Vehicle{}
	err := r.db.Select(&out, r.db.Rebind(`
		SELECT `+vehicleCols+`
		FROM inventory i JOIN classification c ON c.classification_id = i.classification_id
		WHERE i.classification_id = ?
		ORDER BY i.inv_make, i.inv_model
	`), classificationID)
	return out, err
}

func (r *InventoryRepo) Classifications() ([]domain.Classification, error) {
	out := []domain.Classification{}
	err := r.db.Select(&out, `
		SELECT classification_id, classification_name
		FROM classification
		ORDER BY classification_name
	`)
	return out, err
}

func (r *InventoryRepo) ClassificationByName(name string) (*domain.Classification, error) {
	var c domain.Classification
	err := r.db.Get(&c, r.db.Rebind(`
		SELECT classification_id, classification_name
		FROM classification
		WHERE LOWER(classification_name) = LOWER(?)
	`), name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *InventoryRepo) AddClassification(id, name string) (*domain.Classification, error) {
	var c domain.Classification
	err := r.db.Get(&c, r.db.Rebind(`
		INSERT INTO classification(classification_id, classification_name)
		VALUES(?,?)
		RETURNING classification_id, classification_name
	`), id, name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *InventoryRepo) AddVehicle(v *domain.Vehicle) error {
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO inventory
		  (inv_id, classification_id, inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
	`), v.ID, v.ClassificationID, v.Make, v.Model, v.Year, v.Description, v.Image, v.Thumbnail, v.Price, v.Miles, v.Color,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *InventoryRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM inventory`)
	return n, err
}

func (r *InventoryRepo) CountClassifications() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM classification`)
	return n, err
}

// PriceStats carries the dashboard's aggregate price figures.
type PriceStats struct {
	Min float64 `db:"min_price"`
	Max float64 `db:"max_price"`
	Avg float64 `db:"avg_price"`
}

func (r *InventoryRepo) Prices() (PriceStats, error) {
	var s PriceStats
	err := r.db.Get(&s, `
		SELECT COALESCE(MIN(inv_price),0) AS min_price,
		       COALESCE(MAX(inv_price),0) AS max_price,
		       COALESCE(AVG(inv_price),0) AS avg_price
		FROM inventory
	`)
	return s, err
}

// Value sums inv_price * inv_miles / 1000 across the fleet, the
// dashboard's rough valuation figure.
func (r *InventoryRepo) Value() (float64, error) {
	var v float64
	err := r.db.Get(&v, `SELECT COALESCE(SUM(inv_price * inv_miles / 1000.0),0) FROM inventory`)
	return v, err
}

func (r *InventoryRepo) Recent(limit int) ([]domain.Vehicle, error) {
	out := []domain.Vehicle{}
	err := r.db.Select(&out, r.db.Rebind(`
		SELECT `+vehicleCols+`
		FROM inventory i JOIN classification c ON c.classification_id = i.classification_id
		ORDER BY i.created_at DESC
		LIMIT ?
	`), limit)
	return out, err
}
