package records

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

func TestLoadJSON(t *testing.T) {
	in := `[
		{"id": "1", "name": "Andi", "class": "6A", "averageGrade": 85, "attendance": 90, "attitude": 85, "tasks": 8, "nis": "2024001"},
		{"id": 2, "name": "Budi", "class": "6B", "grades": [70, 80]}
	]`
	recs, err := LoadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "1", recs[0].ID)
	require.NotNil(t, recs[0].AverageGrade)
	assert.Equal(t, 85.0, *recs[0].AverageGrade)
	assert.Equal(t, "2024001", recs[0].Extra["nis"])

	assert.Equal(t, "2", recs[1].ID)
	assert.Nil(t, recs[1].Attendance)
	assert.Equal(t, []float64{70, 80}, recs[1].Grades)
}

func TestLoadJSON_Empty(t *testing.T) {
	recs, err := LoadJSON(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestLoadJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an array", `{"id": "1"}`},
		{"missing name", `[{"id": "1"}]`},
		{"attendance above 100", `[{"id": "1", "name": "A", "attendance": 120}]`},
		{"negative tasks", `[{"id": "1", "name": "A", "tasks": -1}]`},
		{"grade as string", `[{"id": "1", "name": "A", "grades": ["90"]}]`},
		{"malformed", `[{"id": }]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			var invalid *ErrInvalidInput
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestLoadCSV(t *testing.T) {
	in := "id,name,class,averageGrade,attendance,attitude,tasks,nis\n" +
		"1,Andi,6A,85,90,85,8,2024001\n" +
		"2,Budi,6B,,,,,2024002\n"
	recs, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Andi", recs[0].Name)
	require.NotNil(t, recs[0].Tasks)
	assert.Equal(t, 8, *recs[0].Tasks)
	assert.Equal(t, "2024001", recs[0].Extra["nis"])

	assert.Nil(t, recs[1].AverageGrade)
	assert.Nil(t, recs[1].Tasks)
	assert.Equal(t, student.Features{80, 85, 80, 8}, student.Extract(recs[1]))
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"not a number", "id,name,attendance\n1,A,x\n", 2},
		{"missing id", "id,name\n,A\n", 2},
		{"grade above 100", "id,name,averageGrade\n1,A,80\n2,B,250\n", 3},
		{"negative attendance", "id,name,attendance\n1,A,-40\n", 2},
		{"attitude above 100", "id,name,attitude\n1,A,100.5\n", 2},
		{"negative tasks", "id,name,tasks\n1,A,-1\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.in))
			var invalid *ErrInvalidInput
			require.True(t, errors.As(err, &invalid), "err = %v", err)
			assert.Equal(t, tt.line, invalid.Line)
			assert.Equal(t, "csv", invalid.Source)
		})
	}
}

func TestLoadCSV_BoundsInclusive(t *testing.T) {
	recs, err := LoadCSV(strings.NewReader("id,name,averageGrade,attendance,tasks\n1,A,100,0,0\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 100.0, *recs[0].AverageGrade)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	recs, err := LoadCSV(strings.NewReader(strings.Join(CSVHeader, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "siswa.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"id":"1","name":"A"}]`), 0o644))
	recs, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	txtPath := filepath.Join(dir, "siswa.txt")
	require.NoError(t, os.WriteFile(txtPath, nil, 0o644))
	_, err = LoadFile(txtPath)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"Rank", "Nama"}, [][]string{
		{"1", "Andi"},
		{"2", "Budi, S."},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rank,Nama\n1,Andi\n2,\"Budi, S.\"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Empty(t, buf.String())
}
