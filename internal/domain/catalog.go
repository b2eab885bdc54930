package domain

// DefaultCatalog returns the built-in base packs used when no catalog
// has been seeded. Each call returns a fresh slice.
func DefaultCatalog() []LearningPack {
	return []LearningPack{
		{
			ID:               "gn-1",
			Source:           SourceGeekNews,
			SourceLabel:      "GeekNews",
			Title:            "React 19에서 바뀌는 것들 정리",
			Summary:          "올해 React 19 릴리즈에서 바뀌는 주요 포인트를 한 번에 정리한 글입니다. concurrent features, actions, form 처리 등 실제 업무에 영향을 줄 만한 내용을 빠르게 훑어볼 수 있어요.",
			EstimatedMinutes: 7,
			Tags:             []string{"React", "업무연결"},
			URL:              "https://news.hada.io",
		},
		{
			ID:               "docs-1",
			Source:           SourceDocs,
			SourceLabel:      "Docs",
			Title:            "React 공식 문서 - Thinking in React",
			Summary:          "React 방식으로 컴포넌트를 쪼개고, 상태를 어디에 둘지 결정하는 과정을 단계별로 설명합니다. 실제로 지금 하고 있는 컴포넌트 구조를 떠올리면서 읽어보면 좋아요.",
			EstimatedMinutes: 10,
			Tags:             []string{"React", "공식문서"},
			URL:              "https://react.dev/learn/thinking-in-react",
		},
		{
			ID:               "notion-1",
			Source:           SourceNotion,
			SourceLabel:      "업무 로그",
			Title:            "최근 작업한 i18n 이슈 복습",
			Summary:          "최근 Notion 업무일지에서 언급된 다국어(i18n) 관련 이슈를 기반으로, 다시 보면 좋을만한 레퍼런스와 체크리스트를 묶어둔 카드입니다. 다음 번 이슈 때 더 빠르게 대응할 수 있도록 돕습니다.",
			EstimatedMinutes: 6,
			Tags:             []string{"i18n", "업무복습"},
		},
		{
			ID:               "docs-2",
			Source:           SourceDocs,
			SourceLabel:      "Docs",
			Title:            "TypeScript Handbook - Generics 개념 잡기",
			Summary:          "제네릭 타입의 기본 개념과 실제 코드에서 어떻게 사용하는지 예제로 설명합니다. 복잡한 유틸 타입을 읽을 때 막혔던 부분을 해소하는 데 도움이 됩니다.",
			EstimatedMinutes: 8,
			Tags:             []string{"TypeScript", "기초다지기"},
			URL:              "https://www.typescriptlang.org/docs/handbook/2/generics.html",
		},
	}
}
