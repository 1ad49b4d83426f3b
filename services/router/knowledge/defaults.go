// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package knowledge

// defaultKnowledgeBase returns the built-in taxonomy. It is used when no
// YAML file is configured, which keeps the service and the test suite
// hermetic. Deployments override it with a file; see Load.
//
// The tables are curated by hand and deployment-specific. Keep keyword
// lists lowercased.
func defaultKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		BaseURL:    "https://portal.vidyasetu.in",
		SearchPath: "/search",
		ImagePath:  "/images",
		BrowsePath: "/resources",

		Sections: []Section{
			{
				Name:        "early_career",
				Description: "Career guidance, competitive exams, and skill courses",
				URLPath:     "/early-career",
				Keywords: []string{
					"career", "job", "jobs", "employment", "competitive",
					"entrance", "polycet", "eamcet", "scholarship", "skill",
					"guidance", "counselling", "vocational",
				},
			},
			{
				Name:        "edutainment",
				Description: "Stories, songs, games, and fun learning",
				URLPath:     "/edutainment",
				Keywords: []string{
					"story", "stories", "song", "songs", "rhyme", "rhymes",
					"game", "games", "fun", "puzzle", "puzzles", "cartoon",
					"video", "videos",
				},
			},
			{
				Name:        "teacher_corner",
				Description: "Lesson plans, teaching aids, and classroom material",
				URLPath:     "/teacher-corner",
				Keywords: []string{
					"teacher", "teaching", "lesson", "plan", "plans",
					"classroom", "aids", "material", "worksheet", "worksheets",
				},
			},
		},

		Academic: Academic{
			ClassPath: "/class",
			Subjects: []Subject{
				{
					Name: "maths",
					Code: "mat",
					Keywords: []string{
						"maths", "math", "mathematics", "arithmetic",
						"algebra", "geometry", "numbers", "calculation",
						"ganitam", "ganit",
					},
				},
				{
					Name: "science",
					Code: "sci",
					Keywords: []string{
						"science", "physics", "chemistry", "biology",
						"experiment", "experiments", "vigyan", "vignanam",
					},
				},
				{
					Name: "english",
					Code: "eng",
					Keywords: []string{
						"english", "grammar", "spelling", "vocabulary",
						"reading", "writing",
					},
				},
				{
					Name: "telugu",
					Code: "tel",
					Keywords: []string{
						"telugu", "padyalu", "padalu", "aksharalu",
					},
				},
				{
					Name: "hindi",
					Code: "hin",
					Keywords: []string{
						"hindi", "varnamala", "vyakaran", "matra",
					},
				},
				{
					Name: "social",
					Code: "soc",
					Keywords: []string{
						"social", "history", "geography", "civics",
						"economics", "samajika",
					},
				},
			},
			OneClickResources: []OneClickResource{
				{
					Name:        "Smart Wall",
					Description: "Interactive smart wall displays",
					URLPath:     "/smart-wall",
					Keywords:    []string{"smart wall", "smartwall", "smart walls"},
				},
				{
					Name:        "MCQ Bank",
					Description: "Multiple choice question bank for all classes",
					URLPath:     "/mcq-bank",
					Keywords:    []string{"mcq bank", "mcq", "question bank", "mcqs"},
				},
				{
					Name:        "Exam Papers",
					Description: "Previous year question papers",
					URLPath:     "/exam-papers",
					Keywords:    []string{"exam papers", "question papers", "previous papers", "old papers"},
				},
				{
					Name:        "Digital Library",
					Description: "Textbooks and reference books",
					URLPath:     "/library",
					Keywords:    []string{"digital library", "library", "textbooks", "text books"},
				},
			},
		},

		Misspellings: map[string]string{
			"monky":       "monkey",
			"elefant":     "elephant",
			"elephent":    "elephant",
			"tigar":       "tiger",
			"lian":        "lion",
			"mathes":      "maths",
			"mathamatics": "mathematics",
			"scince":      "science",
			"sciance":     "science",
			"sceince":     "science",
			"englsh":      "english",
			"inglish":     "english",
			"histroy":     "history",
			"geografy":    "geography",
			"exem":        "exam",
			"examz":       "exams",
			"quizz":       "quiz",
			"techer":      "teacher",
			"teachar":     "teacher",
			"studant":     "student",
			"clas":        "class",
			"calss":       "class",
			"grad":        "grade",
			"piture":      "picture",
			"pictur":      "picture",
			"questian":    "question",
			"anser":       "answer",
			"libary":      "library",
			"carear":      "career",
			"carrer":      "career",
		},

		Synonyms: map[string][]string{
			"exam": {
				"test", "exams", "examination", "quiz", "assessment",
			},
			"maths": {
				"math", "mathematics", "arithmetic", "calculation",
			},
			"picture": {
				"image", "photo", "pictures", "images", "drawing",
			},
			"book": {
				"books", "textbook", "textbooks", "reader",
			},
			"animal": {
				"animals", "creature", "creatures", "wildlife",
			},
			"story": {
				"stories", "tale", "tales", "katha",
			},
			"learn": {
				"study", "practice", "revise", "prepare",
			},
			"teacher": {
				"teachers", "tutor", "guru", "instructor",
			},
		},

		VisualTerms: []string{
			"monkey", "lion", "tiger", "elephant", "cow", "dog", "cat",
			"parrot", "peacock", "fish", "butterfly", "horse", "rabbit",
			"apple", "mango", "banana", "flower", "tree", "leaf",
			"red", "blue", "green", "yellow", "orange", "purple",
			"circle", "square", "triangle", "rectangle", "star",
			"sun", "moon", "rainbow", "mountain", "river",
		},

		StopWords: []string{
			"a", "an", "the", "of", "for", "to", "in", "on", "at",
			"is", "are", "was", "am", "i", "me", "my", "we", "us",
			"you", "it", "and", "or", "with", "about", "show", "want",
			"need", "please", "give",
		},
	}
}
