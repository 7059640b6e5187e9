package ai

// FallbackCVAnalysis returns the fixed low-information analysis substituted
// when the completion provider fails or its response cannot be parsed.
func FallbackCVAnalysis() *CVAnalysis {
	return &CVAnalysis{
		Profile: Profile{
			Name:            "Unknown",
			Title:           "Professional",
			Location:        "Unknown",
			ExperienceYears: 0,
			Summary:         "No summary available",
		},
		Skills: []Skill{
			{Name: "Communication", Level: 3, Years: 2, Category: "Soft"},
		},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []Certification{},
		Languages:      []Language{},
		Analysis: CVAssessment{
			ExperienceLevel:      "Entry",
			Strengths:            []string{"Communication"},
			ImprovementAreas:     []string{"Technical skills"},
			MarketReadinessScore: 30,
			RecommendedRoles:     []string{"Junior Professional"},
			CareerTrajectory:     "Early career development",
		},
	}
}

// FallbackRecommendations returns the fixed recommendation list substituted
// when the completion provider fails or its response cannot be parsed.
func FallbackRecommendations() []SkillRecommendation {
	return []SkillRecommendation{
		{
			Skill:         "Communication",
			Category:      "Soft",
			Priority:      3,
			Reason:        "Important for professional development",
			CurrentLevel:  3,
			TargetLevel:   4,
			TimeToAchieve: "3-6 months",
			Difficulty:    "Medium",
		},
	}
}
