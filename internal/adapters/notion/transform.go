package notion

import (
	"commute-learning-service/internal/domain"
	"math"
	"sort"
	"strings"
)

const (
	defaultListSectionTitle      = "주요 내용"
	defaultParagraphSectionTitle = "개요"
	defaultCodeTitle             = "코드 예시"
	defaultSummary               = "Notion에서 가져온 학습 자료입니다. 실제 업무에 도움이 되는 내용들을 정리했어요."
	untitledPage                 = "Untitled Page"

	summaryMaxRunes = 150
	minMinutes      = 3
	maxMinutes      = 30
)

var baseTags = []string{"Notion", "업무자료"}

func plainText(rt []richText) string {
	var b strings.Builder
	for _, t := range rt {
		b.WriteString(t.PlainText)
	}
	return b.String()
}

// pageTitle joins the plain text of the page's title property.
func pageTitle(p page) string {
	for _, name := range sortedPropertyNames(p.Properties) {
		prop := p.Properties[name]
		if prop.Type == "title" && len(prop.Title) > 0 {
			return plainText(prop.Title)
		}
	}
	return untitledPage
}

// blocksToContent folds Notion blocks into sections and code samples.
// Headings open a new section; list items and non-blank paragraphs append to
// the open section, creating a default one when none is open; code blocks
// close the open section and are emitted on their own.
func blocksToContent(blocks []block) []domain.ContentBlock {
	content := make([]domain.ContentBlock, 0, len(blocks))
	var current *domain.ContentBlock

	flush := func() {
		if current != nil {
			content = append(content, *current)
			current = nil
		}
	}

	appendItem := func(text, defaultTitle string) {
		if current == nil {
			current = &domain.ContentBlock{Type: domain.BlockSection, Title: defaultTitle}
		}
		current.Items = append(current.Items, text)
	}

	for _, b := range blocks {
		switch b.Type {
		case "heading_1", "heading_2", "heading_3":
			flush()
			current = &domain.ContentBlock{
				Type:  domain.BlockSection,
				Title: plainText(b.Payload.RichText),
				Items: []string{},
			}

		case "bulleted_list_item", "numbered_list_item":
			appendItem(plainText(b.Payload.RichText), defaultListSectionTitle)

		case "code":
			flush()
			title := defaultCodeTitle
			if len(b.Payload.Caption) > 0 {
				title = plainText(b.Payload.Caption)
			}
			content = append(content, domain.ContentBlock{
				Type:    domain.BlockCode,
				Title:   title,
				Content: plainText(b.Payload.RichText),
			})

		case "paragraph":
			text := plainText(b.Payload.RichText)
			if strings.TrimSpace(text) != "" {
				appendItem(text, defaultParagraphSectionTitle)
			}
		}
	}
	flush()

	return content
}

// summarize uses the first item of the first section, truncated to 150 characters.
func summarize(content []domain.ContentBlock) string {
	if len(content) > 0 && len(content[0].Items) > 0 {
		first := []rune(content[0].Items[0])
		if len(first) > summaryMaxRunes {
			return string(first[:summaryMaxRunes-3]) + "..."
		}
		return string(first)
	}
	return defaultSummary
}

// estimateMinutes assumes 30 seconds per item and 2 minutes per code sample,
// clamped to 3..30 minutes.
func estimateMinutes(content []domain.ContentBlock) int {
	items, codeBlocks := 0, 0
	for _, c := range content {
		switch c.Type {
		case domain.BlockSection:
			items += len(c.Items)
		case domain.BlockCode:
			codeBlocks++
		}
	}

	m := int(math.Ceil(float64(items)*0.5 + float64(codeBlocks)*2))
	return max(minMinutes, min(m, maxMinutes))
}

// pageTags returns the base tags plus every select and multi-select value.
func pageTags(p page) []string {
	tags := append([]string(nil), baseTags...)
	for _, name := range sortedPropertyNames(p.Properties) {
		prop := p.Properties[name]
		switch {
		case prop.Type == "multi_select":
			for _, opt := range prop.MultiSelect {
				tags = append(tags, opt.Name)
			}
		case prop.Type == "select" && prop.Select != nil:
			tags = append(tags, prop.Select.Name)
		}
	}
	return domain.UniqueTags(tags)
}

func pageURL(p page) string {
	return "https://notion.so/" + strings.ReplaceAll(p.ID, "-", "")
}

// Go maps are unordered; property names are visited alphabetically so tags are stable.
func sortedPropertyNames(props map[string]property) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toLearningPack(pageID string, p page, blocks []block) domain.LearningPack {
	content := blocksToContent(blocks)

	pack := domain.LearningPack{
		ID:               pageID,
		Source:           domain.SourceNotion,
		SourceLabel:      "Notion",
		Title:            pageTitle(p),
		Summary:          summarize(content),
		EstimatedMinutes: estimateMinutes(content),
		Tags:             pageTags(p),
		URL:              pageURL(p),
		Content:          content,
	}
	if !p.LastEditedTime.IsZero() {
		t := p.LastEditedTime
		pack.LastModified = &t
	}

	return pack
}
