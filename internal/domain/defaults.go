package domain

// defaultItemSpecs is the seed catalog used on first run: 22 items in 8 categories
var defaultItemSpecs = []struct{ category, name, description string }{
	{"就労意欲・意欲", "就労意欲", "働きたいという意欲や動機の強さ"},
	{"就労意欲・意欲", "学習意欲", "新しいスキルや知識を学ぶ意欲"},
	{"就労意欲・意欲", "目標設定", "明確な就労目標を持っているか"},

	{"就労能力・技能", "作業遂行能力", "指示された作業を完遂できる能力"},
	{"就労能力・技能", "作業速度", "作業を効率的に行う能力"},
	{"就労能力・技能", "正確性", "作業を正確に行う能力"},
	{"就労能力・技能", "持続力", "長時間作業を継続できる能力"},

	{"対人関係・コミュニケーション", "コミュニケーション能力", "他者と円滑にコミュニケーションを取る能力"},
	{"対人関係・コミュニケーション", "協調性", "チームで協力して作業する能力"},
	{"対人関係・コミュニケーション", "報告・連絡・相談", "適切に報告・連絡・相談ができるか"},

	{"身体面・健康", "体力", "身体的な作業に耐えられる体力"},
	{"身体面・健康", "健康管理", "自己の健康状態を管理する能力"},
	{"身体面・健康", "通勤能力", "職場まで安定して通勤できる能力"},

	{"環境的要因", "家族の理解", "家族からの就労への理解と支援"},
	{"環境的要因", "生活リズム", "規則正しい生活リズムの確立"},

	{"自己理解・自己管理", "自己理解", "自分の強みや課題を理解しているか"},
	{"自己理解・自己管理", "ストレス管理", "ストレスに適切に対処できる能力"},
	{"自己理解・自己管理", "感情コントロール", "感情を適切にコントロールできる能力"},

	{"職業知識・準備", "職業理解", "希望する職業についての理解度"},
	{"職業知識・準備", "ビジネスマナー", "基本的なビジネスマナーの習得度"},

	{"適応性・柔軟性", "環境適応力", "新しい環境に適応する能力"},
	{"適応性・柔軟性", "変化への対応", "予期せぬ変化に柔軟に対応できるか"},
}

// DefaultItems returns a fresh copy of the seed catalog.
// IDs are derived from (category, name) so every call yields the same sequence.
func DefaultItems() []Item {
	items := make([]Item, len(defaultItemSpecs))
	for i, s := range defaultItemSpecs {
		items[i] = Item{
			ID:          DerivedItemID(s.category, s.name),
			Category:    s.category,
			Name:        s.name,
			Description: s.description,
		}
	}
	return items
}
