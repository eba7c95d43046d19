package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractDateToken(t *testing.T) {
	tests := []struct {
		relDir   string
		expected string
	}{
		{"Acme/2024-01-01", "2024-01-01"},
		{"Acme/2024-01-01_2", "2024-01-01_2"},
		{"2023-12-31/Acme/2024-01-01/scans", "2024-01-01"},
		{"Acme", DateUnknown},
		{".", DateUnknown},
		{"Acme/2024-1-1", DateUnknown},
		{"Acme/2024-01-01_x", DateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.relDir, func(t *testing.T) {
			if got := ExtractDateToken(tt.relDir); got != tt.expected {
				t.Errorf("ExtractDateToken(%q) = %q, expected %q", tt.relDir, got, tt.expected)
			}
		})
	}
}

func TestExtractOrganization(t *testing.T) {
	tests := []struct {
		name     string
		relDir   string
		filename string
		expected string
	}{
		{"first directory", "Acme/2024-01-01", "x.pdf", "Acme"},
		{"single directory", "Acme", "x.pdf", "Acme"},
		{"sanitized", "_Acme:Corp_", "x.pdf", "Acme_Corp"},
		{"long name shortened", strings.Repeat("a", 25) + "bbbbb" + "ccccc", "x.pdf", strings.Repeat("a", 20) + "...ccccc"},
		{"from in name", ".", "Invoice from Acme Corp.pdf", "Acme Corp"},
		{"cyrillic от in name", ".", "Отчет от Ромашка_2024.pdf", "Ромашка"},
		{"no hint", ".", "scan0001.pdf", UnknownOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractOrganization(tt.relDir, tt.filename); got != tt.expected {
				t.Errorf("ExtractOrganization(%q, %q) = %q, expected %q", tt.relDir, tt.filename, got, tt.expected)
			}
		})
	}
}

func TestBuildFinalName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		org      string
		folder   string
		date     string
		expected string
	}{
		{"all parts", "scan.pdf", "Acme", "Receipts", "2024-01-01", "Acme_2024-01-01_Receipts.pdf"},
		{"unknown organization", "scan.pdf", UnknownOrganization, "Receipts", "2024-01-01", "Organization_Unknown_2024-01-01_Receipts.pdf"},
		{"empty folder", "a.xlsx", "Acme", "", "2024-01-01", "Acme_2024-01-01_Folder_Unknown.xlsx"},
		{"empty date", "a.xlsx", "Acme", "Receipts", "", "Acme_Date_Unknown_Receipts.xlsx"},
		{"illegal characters", "a.pdf", "Acme", "Rec/eipts?", "2024-01-01", "Acme_2024-01-01_Rec_eipts.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildFinalName(tt.original, tt.org, tt.folder, tt.date); got != tt.expected {
				t.Errorf("BuildFinalName() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFinalNameIsBounded(t *testing.T) {
	org := strings.Repeat("o", 120)
	folder := strings.Repeat("f", 150)
	date := "2024-01-01"

	got := BuildFinalName("x.pdf", org, folder, date)
	if RuneLen(got) > MaxFinalNameRunes {
		t.Fatalf("name has %d runes, expected at most %d", RuneLen(got), MaxFinalNameRunes)
	}
	if !strings.HasPrefix(got, org+"_"+date+"_") {
		t.Errorf("organization and date should survive when the folder absorbs the excess: %q", got)
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("extension lost: %q", got)
	}
}

func TestBuildFinalNameKeepsFivePerPart(t *testing.T) {
	got := BuildFinalName("x.pdf", strings.Repeat("o", 300), strings.Repeat("f", 300), "2024-01-01")
	if !strings.Contains(got, "_fffff.pdf") {
		t.Errorf("folder should keep five runes: %q", got)
	}
	if !strings.Contains(got, "_2024-") {
		t.Errorf("date should keep at least five runes: %q", got)
	}
	if RuneLen(got) > MaxFinalNameRunes {
		t.Errorf("name has %d runes", RuneLen(got))
	}
}

func TestBuildFinalNameFitsByteLimit(t *testing.T) {
	org := strings.Repeat("Ю", 30)
	folder := strings.Repeat("Ж", 100)
	date := "2024-01-01"

	got := BuildFinalName("отчет.xlsx", org, folder, date)
	if len(got) > MaxFinalNameBytes {
		t.Fatalf("name has %d bytes, expected at most %d", len(got), MaxFinalNameBytes)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("name is not valid UTF-8: %q", got)
	}
	if !strings.HasPrefix(got, org+"_"+date+"_Ж") {
		t.Errorf("folder should absorb the excess: %q", got)
	}
	if !strings.HasSuffix(got, ".xlsx") {
		t.Errorf("extension lost: %q", got)
	}
	if n := len(DisambiguatedName(got, 9999)); n > 255 {
		t.Errorf("collision name has %d bytes", n)
	}
}

func TestDisambiguatedName(t *testing.T) {
	if got := DisambiguatedName("Acme_2024-01-01_Receipts.pdf", 1); got != "Acme_2024-01-01_Receipts_1.pdf" {
		t.Errorf("DisambiguatedName = %q", got)
	}
}

func TestTallyOutcomes(t *testing.T) {
	outcomes := []Outcome{
		{Source: "/in/a.pdf", Folder: "Receipts", Destination: "/out/Receipts/a.pdf", Organization: "Acme"},
		{Source: "/in/b.pdf", Folder: "Receipts", Destination: "/out/Receipts/b.pdf", Organization: "Beta"},
		{Source: "/in/c.pdf", Folder: "Invoices", Destination: "/out/Invoices/c.pdf", Organization: "Acme"},
		{Source: "/in/d.pdf", Reason: "deferred"},
	}

	folders, orgs, left := TallyOutcomes(outcomes)
	if len(folders) != 2 || folders[0] != (FolderCount{"Receipts", 2}) || folders[1] != (FolderCount{"Invoices", 1}) {
		t.Errorf("folders = %+v", folders)
	}
	if len(orgs) != 2 || orgs[0] != "Acme" || orgs[1] != "Beta" {
		t.Errorf("orgs = %v", orgs)
	}
	if len(left) != 1 || left[0] != "/in/d.pdf" {
		t.Errorf("left = %v", left)
	}
}
