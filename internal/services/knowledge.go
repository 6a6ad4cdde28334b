package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const personaPreamble = "You are Ryan's AI assistant. Below is Ryan Radityatama's detailed professional information:"

const personaClosing = `When someone asks how to contact Ryan, always provide his direct contact information: "You can contact Ryan directly at +62 813 8764 3604 or via email at ryradit@gmail.com. He's available for project discussions, job opportunities, or any professional inquiries."

Be friendly, professional, and concise in your responses.`

const defaultKnowledge = `PROFESSIONAL EXPERIENCE:
1. AI ENGINEER - London, United Kingdom (Remote) | March 2025 - July 2025
   Trymerra AI Ltd.
   - Developed a minimum viable product (MVP) for an AI-driven recruitment platform, handling the entire development process from UI/UX design to full-stack implementation
   - Built the frontend using React and developed backend APIs to handle core logic and data operations
   - Integrated advanced conversational AI features, including CV parsing and automated interview simulations
   - Focused on optimizing system performance to ensure a responsive, real-time user experience

2. AI & ALGORITHM ENGINEER - Jakarta, Indonesia | Jan 2025 - Feb 2025
   PT. Digital SawitPRO
   - Managed the development of an AI-based computer vision system to detect palm trees from drone and satellite imagery
   - Built and fine-tuned deep learning models using PyTorch for object detection and image segmentation
   - Worked with engineering and product teams to integrate the detection system into a scalable pipeline

3. AI ENGINEER - Jakarta, Indonesia | April 2023 - April 2024
   BIT's NLPIR Research Lab
   - Conducted research to fine-tune large language models (LLMs) for Indonesian language
   - Preprocessed and curated large-scale Indonesian datasets, applying tokenization and cleaning strategies

4. SENIOR IT SOLUTIONS - Jakarta, Indonesia | Oct 2022 - Feb 2023
   Universitas Mercu Buana
   - Led a small IT team ensuring smooth operation of campus-wide IT infrastructure
   - Implemented system optimizations resulting in 15% increase in efficiency
   - Oversaw IT projects including system upgrades, cloud migration, and security enhancements

5. IT SOLUTIONS & INTERNATIONAL OPERATIONS OFFICER - Jakarta, Indonesia | Sep 2019 - Oct 2022
   Universitas Mercu Buana
   - Managed databases for international academic initiatives
   - Provided technical support and training, contributing to 20% efficiency increase
   - Coordinated international programs and maintained the international relations website

EDUCATION:
1. BEIJING INSTITUTE OF TECHNOLOGY - Beijing, China | 2022 - 2024
   Master Degree of Computer Science and Technology
   - Recipient of Chinese Government Scholarship
   - Thesis: Research on Indonesian Large Language Models Fine-Tuning for Mental Health
   - Chair of Election Voting Section, Indonesian Embassy Beijing (Feb-Mar 2024)

2. UNIVERSITAS MERCU BUANA - Jakarta, Indonesia | 2015 - 2019
   Bachelor of Informatics Engineering
   - Nominated as Cum-laude Graduate in Faculty, GPA: 3.88/4.0
   - Thesis: Android Based Mobile Application for Finding Nearby Sports Field and Online

3. BEIJING INSTITUTE OF TECHNOLOGY - Beijing, China | 2015 - 2019
   Bachelor Degree of Computer Science and Technology
   - Thesis: Android Based Mobile Application for Finding Nearby Sports Field and Online

SKILLS:
- Hard Skills: AI & NLP (PyTorch, TensorFlow, Hugging Face Transformers, GPT, scikit-learn), Computer Vision (YOLO, OpenCV), Full-Stack Development (React, Next.js, Node.js), Database (MySQL, PostgreSQL), Mobile Development (Java & Kotlin), System Optimization & Data Integration
- Soft Skills: Analytical Thinking, Collaborative Approach, Strong Adaptability, Clear Communication, Initiative in Leading Projects
- Languages: English (Professional), Mandarin Chinese (Basic), Dutch (Basic)`

// DefaultPersona is the built-in knowledge block placed at the top of every prompt.
var DefaultPersona = composePersona(defaultKnowledge)

func composePersona(knowledge string) string {
	return personaPreamble + "\n\n" + knowledge + "\n\n" + personaClosing
}

// LoadPersona builds a persona from a knowledge file (.txt, .md or .pdf),
// typically the CV itself. An empty path yields DefaultPersona.
func LoadPersona(path string) (string, error) {
	if path == "" {
		return DefaultPersona, nil
	}

	text, err := extractTextFromPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to load knowledge from %s: %w", path, err)
	}

	knowledge, err := shapeKnowledge(text)
	if err != nil {
		return "", fmt.Errorf("failed to load knowledge from %s: %w", path, err)
	}
	return composePersona(knowledge), nil
}

func extractTextFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt", ".md":
		return extractTXT(path)
	case ".pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("unsupported knowledge file type: %s", ext)
	}
}

func extractTXT(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := normalizeExtractedText(string(b))
	if text == "" {
		return "", fmt.Errorf("knowledge file is empty")
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text := normalizeExtractedText(b.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return text, nil
}

// minKnowledgeChars is the smallest CV body accepted as a persona.
const minKnowledgeChars = 200

var sectionKeywords = []string{
	"EXPERIENCE", "EDUCATION", "SKILLS", "PROJECTS", "SUMMARY",
	"PROFILE", "CERTIFICATIONS", "PUBLICATIONS", "AWARDS", "LANGUAGES",
}

var (
	cvEmailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern   = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	urlPattern     = regexp.MustCompile(`(?i)(https?://|www\.|linkedin\.com|github\.com)\S*`)
)

// isSectionHeading reports whether line is a short CV heading such as
// "PROFESSIONAL EXPERIENCE:" or "Skills".
func isSectionHeading(line string) bool {
	if len(line) > 40 {
		return false
	}
	upper := strings.ToUpper(strings.TrimSuffix(line, ":"))
	for _, kw := range sectionKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func isContactLine(line string) bool {
	if cvEmailPattern.MatchString(line) || urlPattern.MatchString(line) {
		return true
	}
	for _, m := range phonePattern.FindAllString(line, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 9 {
			return true
		}
	}
	return false
}

// shapeKnowledge drops contact lines from the CV header, which the persona
// closing already supplies, and rejects text that does not read as a CV.
func shapeKnowledge(text string) (string, error) {
	lines := strings.Split(text, "\n")

	first := -1
	for i, line := range lines {
		if isSectionHeading(line) {
			first = i
			break
		}
	}
	if first < 0 {
		return "", fmt.Errorf("knowledge has no recognisable CV sections")
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines[:first] {
		if !isContactLine(line) {
			kept = append(kept, line)
		}
	}
	kept = append(kept, lines[first:]...)

	knowledge := normalizeExtractedText(strings.Join(kept, "\n"))
	if n := utf8.RuneCountInString(knowledge); n < minKnowledgeChars {
		return "", fmt.Errorf("knowledge is too short (%d characters, need %d)", n, minKnowledgeChars)
	}
	return knowledge, nil
}

// normalizeExtractedText trims every line and collapses runs of blank lines.
func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var buf bytes.Buffer
	emptyCount := 0
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
