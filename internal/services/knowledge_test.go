package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPersona_DefaultWhenUnset(t *testing.T) {
	p, err := LoadPersona("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != DefaultPersona {
		t.Fatal("expected built-in persona")
	}
	if !strings.Contains(p, "PROFESSIONAL EXPERIENCE:") || !strings.Contains(p, "ryradit@gmail.com") {
		t.Fatal("expected built-in knowledge and contact details")
	}
}

const sampleSkills = "SKILLS:\n- Hard Skills: AI & NLP (PyTorch, TensorFlow, Hugging Face Transformers), Computer Vision (YOLO, OpenCV)\n" +
	"- Full-Stack Development: React, Next.js, Node.js, Go\n" +
	"- Soft Skills: Analytical Thinking, Collaborative Approach, Clear Communication\n"

func writeKnowledge(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write knowledge file: %v", err)
	}
	return path
}

func TestLoadPersona_FromText(t *testing.T) {
	path := writeKnowledge(t, "knowledge.txt", "  SKILLS:\r\n\r\n\r\n  - Go  \n"+strings.Replace(sampleSkills, "SKILLS:\n", "", 1))

	p, err := LoadPersona(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(p, personaPreamble) || !strings.HasSuffix(p, personaClosing) {
		t.Fatal("expected preamble and closing around file knowledge")
	}
	if !strings.Contains(p, "SKILLS:\n\n- Go\n- Hard Skills") {
		t.Fatalf("expected normalised knowledge, got:\n%s", p)
	}
}

func TestLoadPersona_StripsContactHeader(t *testing.T) {
	cv := "RYAN RADITYATAMA\n" +
		"AI Engineer\n" +
		"ryan.old@example.com | +62 811 0000 1111\n" +
		"linkedin.com/in/ryradit\n\n" +
		"PROFESSIONAL EXPERIENCE\n" +
		"AI ENGINEER | March 2025 - July 2025, contact via hr@trymerra.example\n\n" +
		sampleSkills

	p, err := LoadPersona(writeKnowledge(t, "cv.md", cv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	knowledge := strings.TrimSuffix(strings.TrimPrefix(p, personaPreamble+"\n\n"), "\n\n"+personaClosing)

	for _, gone := range []string{"ryan.old@example.com", "+62 811 0000 1111", "linkedin.com"} {
		if strings.Contains(knowledge, gone) {
			t.Errorf("expected header contact %q to be stripped", gone)
		}
	}
	if !strings.HasPrefix(knowledge, "RYAN RADITYATAMA\nAI Engineer\n\nPROFESSIONAL EXPERIENCE") {
		t.Errorf("expected name and title to stay, got:\n%s", knowledge)
	}
	if !strings.Contains(knowledge, "hr@trymerra.example") {
		t.Error("expected lines inside sections to be kept")
	}
}

func TestLoadPersona_Errors(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"empty.txt":      " \n ",
		"short.txt":      "SKILLS:\n- Go\n",
		"no-sections.md": strings.Repeat("Lorem ipsum dolor sit amet. ", 20),
		"cv.docx":        sampleSkills,
		"cv.odt":         sampleSkills,
	}
	for name, body := range files {
		os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644)
	}

	for _, name := range []string{"empty.txt", "short.txt", "no-sections.md", "cv.docx", "cv.odt", "missing.txt"} {
		if _, err := LoadPersona(filepath.Join(dir, name)); err == nil {
			t.Errorf("expected error for %s", name)
		}
	}
}

func TestIsContactLine(t *testing.T) {
	cases := map[string]bool{
		"ryradit@gmail.com":          true,
		"+62 813 8764 3604":          true,
		"https://ryradit.dev":        true,
		"github.com/ryradit":         true,
		"Jakarta, Indonesia":         false,
		"Jakarta | 2015 - 2019":      false,
		"GPA: 3.88/4.0":              false,
		"Master of Computer Science": false,
	}
	for line, want := range cases {
		if got := isContactLine(line); got != want {
			t.Errorf("isContactLine(%q) = %v, want %v", line, got, want)
		}
	}
}
