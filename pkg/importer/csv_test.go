package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/dbtest"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/project"
)

func TestImportCSVSkipsBadRowsAndKeepsGood(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
	svc := project.NewService(db)

	csvData := strings.Join([]string{
		"title,constituency_code,category,status,budget,start_date,source_doc_ref",
		"Borehole Rehab,001,Water,Ongoing,2000000,2025-01-15,NGCDF-2025-Q1.pdf",
		"Bad Category,001,Spaceport,Planned,100,2025-01-01,",
		"Bad Date,001,Infrastructure,Planned,100,15/01/2025,",
		"Classroom Block,001,Education,Planned,3500000,,NGCDF-2025-Q1.pdf",
	}, "\n")

	var report bytes.Buffer
	sum, err := ImportCSV(context.Background(), svc, strings.NewReader(csvData), &report)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Created)
	assert.Equal(t, 0, sum.Updated)
	assert.Equal(t, 2, sum.Failed)

	// The bad rows aborted only themselves.
	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var stored model.Project
	require.NoError(t, db.Take(&stored, "title = ?", "Classroom Block").Error)
	assert.Equal(t, model.CategoryEducation, stored.Category)

	assert.Contains(t, report.String(), "line 3")
	assert.Contains(t, report.String(), "line 4")
}

func TestImportCSVReimportUpdatesInPlace(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
	svc := project.NewService(db)

	csvData := "title,constituency_code,category,budget\nMarket Shed,001,Other,500000\n"

	var report bytes.Buffer
	sum, err := ImportCSV(context.Background(), svc, strings.NewReader(csvData), &report)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Created)

	sum, err = ImportCSV(context.Background(), svc, strings.NewReader(csvData), &report)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Created)
	assert.Equal(t, 1, sum.Updated)

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportCSVStripsHeaderBOM(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&model.Constituency{
		Code: "001", Name: "Changamwe", County: "Mombasa", MPName: "A. Mwinyi",
	}).Error)
	svc := project.NewService(db)

	// Spreadsheet exports prepend a BOM to the first header cell.
	csvData := "\ufefftitle,constituency_code\nFootbridge,001\n"

	var report bytes.Buffer
	sum, err := ImportCSV(context.Background(), svc, strings.NewReader(csvData), &report)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Created)

	var stored model.Project
	require.NoError(t, db.Take(&stored, "title = ?", "Footbridge").Error)
	assert.Equal(t, "001", stored.ConstituencyCode)
}

func TestImportCSVMissingRequiredColumn(t *testing.T) {
	db := dbtest.Open(t)
	svc := project.NewService(db)

	var report bytes.Buffer
	_, err := ImportCSV(context.Background(), svc, strings.NewReader("title,budget\nX,1\n"), &report)
	assert.ErrorContains(t, err, "constituency_code")
}
