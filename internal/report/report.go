// Package report renders analysis results for the terminal and as CSV
// rows for export.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/gradestats"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/ui/components"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/ui/theme"
)

const barWidth = 16

// Priority renders a SAW ranking with its category summary.
func Priority(res *analytics.PriorityResult) string {
	_, rows := PriorityRows(res)

	t := newTable("Rank", "ID", "Nama", "Kelas", "Skor SAW", "", "Kategori")
	for i, r := range rows {
		s := res.Data[i]
		bar := components.NewScoreBar(s.Score, false, barWidth).View()
		t.Row(r[0], r[1], r[2], r[3], r[4], bar, theme.TierStyle(s.Category).Render(r[5]))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Prioritas Siswa (SAW)"),
		theme.Subtitle.Render(criteriaLine(res)),
		t.String(),
		Summary(res.Summary),
	)
}

// Cluster renders a K-Means tiering: members, cluster statistics and the
// label summary.
func Cluster(res *analytics.ClusterResult) string {
	_, rows := ClusterRows(res)

	members := newTable("ID", "Nama", "Kelas", "Cluster", "Performa", "Label")
	for i, r := range rows {
		members.Row(r[0], r[1], r[2], r[3], r[4], theme.TierStyle(res.Data[i].Label).Render(r[5]))
	}

	stats := newTable("Cluster", "Anggota", "Rata-rata Performa", "Label")
	for _, st := range res.ClusterStats {
		stats.Row(
			strconv.Itoa(st.Cluster),
			strconv.Itoa(st.Count),
			fmt.Sprintf("%.2f", st.AvgPerformance*100),
			theme.TierStyle(st.Label).Render(string(st.Label)),
		)
	}

	status := fmt.Sprintf("%d iterasi, %s", res.Iterations, res.State)
	if !res.Converged && len(res.Data) > 0 {
		status = lipgloss.NewStyle().Foreground(theme.Accent).Render(status + " (belum konvergen)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Pengelompokan Siswa (K-Means)"),
		theme.Subtitle.Render(status),
		members.String(),
		stats.String(),
		Summary(res.Summary),
	)
}

// Summary renders tier counts in a card, shipped labels first and other
// labels in name order.
func Summary(s tier.Summary) string {
	lines := make([]string, 0, 3+len(s.Other))
	for _, l := range tier.DefaultVocabulary() {
		lines = append(lines, summaryLine(l, s.Count(l)))
	}
	others := make([]string, 0, len(s.Other))
	for l := range s.Other {
		others = append(others, string(l))
	}
	sort.Strings(others)
	for _, l := range others {
		lines = append(lines, summaryLine(tier.Label(l), s.Other[tier.Label(l)]))
	}
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("Total: %d siswa", s.Total())))
	return theme.Card.Render(strings.Join(lines, "\n"))
}

func summaryLine(l tier.Label, n int) string {
	return theme.TierStyle(l).Render(fmt.Sprintf("%-16s", string(l))) + " " + theme.Body.Render(strconv.Itoa(n))
}

// Stats renders descriptive grade statistics.
func Stats(r gradestats.Report) string {
	if r.Count == 0 {
		return theme.Hint.Render("Tidak ada nilai.")
	}

	overview := newTable("Statistik", "Nilai")
	overview.Rows(
		[]string{"Jumlah", strconv.Itoa(r.Count)},
		[]string{"Rata-rata", formatFloat(r.Average)},
		[]string{"Median", formatFloat(r.Median)},
		[]string{"Modus", formatFloat(r.Mode)},
		[]string{"Simpangan Baku", fmt.Sprintf("%.2f", r.StdDev)},
		[]string{"Terendah", formatFloat(r.Min)},
		[]string{"Tertinggi", formatFloat(r.Max)},
		[]string{fmt.Sprintf("Lulus (>= %s)", formatFloat(r.PassingGrade)), formatFloat(r.PassingRate) + "%"},
		[]string{"Predikat", r.Letter + " / " + r.Predicate},
	)

	bands := newTable("Rentang", "Jumlah")
	for _, b := range r.Bands {
		bands.Row(b.Name, strconv.Itoa(b.Count))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Statistik Nilai"),
		overview.String(),
		bands.String(),
	)
}

// PriorityRows flattens a SAW ranking for CSV export.
func PriorityRows(res *analytics.PriorityResult) ([]string, [][]string) {
	headers := []string{"rank", "id", "name", "class", "sawScore", "category"}
	rows := make([][]string, len(res.Data))
	for i, s := range res.Data {
		rows[i] = []string{
			strconv.Itoa(s.Rank),
			s.Record.ID,
			s.Record.Name,
			s.Record.Class,
			strconv.FormatFloat(s.Score, 'f', 4, 64),
			string(s.Category),
		}
	}
	return headers, rows
}

// ClusterRows flattens a K-Means tiering for CSV export, including the
// extracted features.
func ClusterRows(res *analytics.ClusterResult) ([]string, [][]string) {
	headers := []string{"id", "name", "class", "cluster", "performanceScore", "clusterLabel"}
	for _, f := range student.AllFeatures() {
		headers = append(headers, f.Key())
	}

	rows := make([][]string, len(res.Data))
	for i, c := range res.Data {
		row := []string{
			c.Record.ID,
			c.Record.Name,
			c.Record.Class,
			strconv.Itoa(c.Cluster),
			fmt.Sprintf("%.2f", c.PerformanceScore),
			string(c.Label),
		}
		for _, v := range c.Features {
			row = append(row, formatFloat(v))
		}
		rows[i] = row
	}
	return headers, rows
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		Headers(headers...)
}

func criteriaLine(res *analytics.PriorityResult) string {
	parts := make([]string, len(res.Criteria))
	for i, c := range res.Criteria {
		parts[i] = fmt.Sprintf("%s %.0f%%", c.Name, c.Weight*100)
	}
	return strings.Join(parts, " · ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
