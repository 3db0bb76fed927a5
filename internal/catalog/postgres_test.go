// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"site-advisor/internal/common/errors"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/models"
)

func resourceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category", "name", "longitude", "latitude", "magnitude"})
}

func TestPostgresCatalog_Query_GroupsByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := resourceRows().
		AddRow("ge-1", "green_energy", "Charanka Solar Park", 71.20, 23.90, 690.0).
		AddRow("ge-2", "green_energy", "Kutch Wind Farm", 69.80, 23.20, 300.0).
		AddRow("wt-1", "water", "Narmada Canal", 72.10, 23.10, 458.0).
		AddRow("in-1", "industry", "Sanand GIDC", 72.38, 22.99, 850.0).
		AddRow("tr-1", "transport", "NH-47 Junction", 72.55, 23.00, 0.0)

	mock.ExpectQuery(`SELECT id, category, name, longitude, latitude, magnitude`).
		WithArgs("gujarat").
		WillReturnRows(rows)

	cat := NewPostgresCatalog(db, logger.NewTestLogger(t))
	snapshot, err := cat.Query(context.Background(), "gujarat")

	assert.NoError(t, err)
	assert.Equal(t, "gujarat", snapshot.Region)
	assert.Len(t, snapshot.Resources[models.CategoryGreenEnergy], 2)
	assert.Len(t, snapshot.Resources[models.CategoryWater], 1)
	assert.Len(t, snapshot.Resources[models.CategoryIndustry], 1)
	assert.Len(t, snapshot.Resources[models.CategoryTransport], 1)
	assert.Empty(t, snapshot.EmptyCategories())

	ge := snapshot.Resources[models.CategoryGreenEnergy][0]
	assert.Equal(t, "ge-1", ge.ID)
	assert.Equal(t, "Charanka Solar Park", ge.Name)
	assert.Equal(t, 71.20, ge.Location.Lng)
	assert.Equal(t, 23.90, ge.Location.Lat)
	assert.Equal(t, 690.0, ge.Magnitude)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_Query_SkipsUnknownCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := resourceRows().
		AddRow("x-1", "geothermal", "Unknown Kind", 71.0, 23.0, 10.0).
		AddRow("wt-1", "water", "Sardar Sarovar", 73.75, 21.83, 9500.0)

	mock.ExpectQuery(`SELECT id, category, name, longitude, latitude, magnitude`).
		WithArgs("gujarat").
		WillReturnRows(rows)

	cat := NewPostgresCatalog(db, logger.NewTestLogger(t))
	snapshot, err := cat.Query(context.Background(), "gujarat")

	assert.NoError(t, err)
	assert.Len(t, snapshot.Resources[models.CategoryWater], 1)
	assert.Len(t, snapshot.EmptyCategories(), 3)
}

func TestPostgresCatalog_Query_ClampsNegativeMagnitude(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := resourceRows().
		AddRow("in-1", "industry", "Dahej SEZ", 72.58, 21.70, -5.0)

	mock.ExpectQuery(`SELECT id, category, name, longitude, latitude, magnitude`).
		WithArgs("gujarat").
		WillReturnRows(rows)

	cat := NewPostgresCatalog(db, logger.NewTestLogger(t))
	snapshot, err := cat.Query(context.Background(), "gujarat")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, snapshot.Resources[models.CategoryIndustry][0].Magnitude)
}

func TestPostgresCatalog_Query_WrapsBackendError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, category, name, longitude, latitude, magnitude`).
		WithArgs("gujarat").
		WillReturnError(assert.AnError)

	cat := NewPostgresCatalog(db, logger.NewTestLogger(t))
	snapshot, err := cat.Query(context.Background(), "gujarat")

	assert.Nil(t, snapshot)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeCatalogQueryFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
}
