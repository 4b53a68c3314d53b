package catalog

// documentSchema describes responses.json. Every section is optional, but a
// section that is present must carry all of its fields.
const documentSchema = `{
	"type": "object",
	"required": ["responses"],
	"properties": {
		"responses": {
			"type": "object",
			"properties": {
				"payment": {
					"type": "object",
					"required": ["intro", "options", "issue_responses"],
					"properties": {
						"intro": {"type": "string"},
						"options": {"type": "array", "items": {"type": "string"}},
						"issue_responses": {"type": "array", "items": {"type": "string"}, "minItems": 2}
					}
				},
				"delivery": {
					"type": "object",
					"required": ["intro"],
					"properties": {
						"intro": {"type": "string"}
					}
				},
				"seasonal_availability": {
					"type": "object",
					"required": ["intro", "social_media"],
					"properties": {
						"intro": {"type": "string"},
						"social_media": {
							"type": "object",
							"required": ["facebook", "twitter", "instagram"],
							"properties": {
								"facebook": {"type": "string"},
								"twitter": {"type": "string"},
								"instagram": {"type": "string"}
							}
						}
					}
				},
				"contact_information": {
					"type": "object",
					"required": ["intro", "telephone_numbers", "social_media_link"],
					"properties": {
						"intro": {"type": "string"},
						"telephone_numbers": {
							"type": "object",
							"required": ["business", "alternative"],
							"properties": {
								"business": {"type": "string"},
								"alternative": {"type": "string"}
							}
						},
						"social_media_link": {"type": "string"}
					}
				},
				"other_faq": {
					"type": "object",
					"required": ["intro", "faq_link"],
					"properties": {
						"intro": {"type": "string"},
						"faq_link": {"type": "string"}
					}
				},
				"feedback": {
					"type": "object",
					"required": ["intro_low_rating", "intro_high_rating", "user_response"],
					"properties": {
						"intro_low_rating": {"type": "string"},
						"intro_high_rating": {"type": "string"},
						"user_response": {"type": "string"}
					}
				}
			}
		}
	}
}`
