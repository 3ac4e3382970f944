package domain

// DefaultRules returns the built-in rule set for every platform.
// The numbers mirror each platform's published limits.
func DefaultRules() []PlatformRules {
	return []PlatformRules{
		{
			Platform:       PlatformYouTube,
			TitleMaxLength: 100,
			TagMinCount:    10,
			TagMaxCount:    15,
			ContentStyle:   StyleEducationalEntertainment,
			StyleGuidelines: []string{
				"Engaging and SEO-friendly titles",
				"Balance educational and entertainment value",
				"Use trending keywords for discoverability",
				"Clear, descriptive content that matches video topic",
			},
			SpecialRequirements: []string{
				"Focus on trending keywords",
				"Optimize for YouTube search algorithm",
				"Consider video thumbnail compatibility",
				"Title truncated after 70 chars in search results",
				"Description preview shows first 157 chars",
			},
			MaxLengths: map[Field]int{
				FieldDescription: 5000,
				FieldBio:         1000,
				FieldComments:    10000,
			},
			OptimalLengths: map[Field]int{
				FieldTitle:       70,
				FieldDescription: 157,
			},
		},
		{
			Platform:       PlatformInstagram,
			TitleMaxLength: 150,
			TagMinCount:    20,
			TagMaxCount:    30,
			ContentStyle:   StyleVisualLifestyle,
			StyleGuidelines: []string{
				"Visually appealing and lifestyle-focused",
				"Use mix of popular and niche hashtags",
				"Encourage engagement and interaction",
				"Visual-first content approach",
			},
			SpecialRequirements: []string{
				"Hashtag-heavy approach (20-30 tags)",
				"Mix trending and niche hashtags",
				"Consider Instagram Reels format",
				"Caption truncated after 125 chars with 'more' button",
				"Max 30 hashtags per post, optimal 5-10 for engagement",
			},
			MaxLengths: map[Field]int{
				FieldCaption:     2200,
				FieldBio:         150,
				FieldUsername:    30,
				FieldProfileName: 30,
				FieldComments:    2200,
			},
			OptimalLengths: map[Field]int{
				FieldCaption: 125,
			},
		},
		{
			Platform:       PlatformFacebook,
			TitleMaxLength: 255,
			TagMinCount:    3,
			TagMaxCount:    5,
			ContentStyle:   StyleCommunityBuilding,
			StyleGuidelines: []string{
				"Engagement-focused and shareable",
				"Community-building approach",
				"Moderate hashtag usage",
				"Encourage comments and shares",
			},
			SpecialRequirements: []string{
				"Not hashtag-heavy (3-5 only)",
				"Focus on shareability",
				"Encourage community interaction",
				"Posts ≤80 chars get 66% higher engagement",
				"Algorithm favors shorter posts in news feed",
			},
			MaxLengths: map[Field]int{
				FieldPostBody: 63206,
				FieldBio:      255,
				FieldHeadline: 40,
			},
			OptimalLengths: map[Field]int{
				FieldPostBody: 80,
			},
		},
		{
			Platform:       PlatformTikTok,
			TitleMaxLength: 150,
			TagMinCount:    3,
			TagMaxCount:    5,
			ContentStyle:   StyleTrendFocused,
			StyleGuidelines: []string{
				"Trend-aware and catchy",
				"Gen-Z friendly language",
				"Viral potential focus",
				"Current trend integration",
			},
			SpecialRequirements: []string{
				"Use trending hashtags",
				"Consider current TikTok trends",
				"Appeal to younger demographics",
				"Max 30 hashtags within caption limit",
				"Optimal 3-5 hashtags for engagement",
			},
			MaxLengths: map[Field]int{
				FieldCaption:  2200,
				FieldBio:      80,
				FieldUsername: 24,
				FieldComments: 150,
			},
		},
		{
			Platform:       PlatformXTwitter,
			TitleMaxLength: 280,
			TagMinCount:    2,
			TagMaxCount:    3,
			ContentStyle:   StyleConciseTimely,
			StyleGuidelines: []string{
				"Concise and timely",
				"Conversation-starting",
				"Hashtags integrated into text",
				"Current events awareness",
			},
			SpecialRequirements: []string{
				"280 character total limit (including hashtags)",
				"Hashtags integrated into main text",
				"Focus on current conversations",
				"Emojis count as 2 characters",
				"URLs count as 23 characters regardless of length",
				"Premium users get 25,000 character limit",
			},
			MaxLengths: map[Field]int{
				FieldPostBody:    280,
				FieldBio:         160,
				FieldUsername:    15,
				FieldProfileName: 50,
			},
			OptimalLengths: map[Field]int{
				FieldPostBody: 100,
			},
		},
		{
			Platform:       PlatformLinkedIn,
			TitleMaxLength: 210,
			TagMinCount:    3,
			TagMaxCount:    5,
			ContentStyle:   StyleProfessional,
			StyleGuidelines: []string{
				"Professional and thought-leadership focused",
				"Industry-relevant content",
				"Professional networking approach",
				"Value-driven messaging",
			},
			SpecialRequirements: []string{
				"Professional tone mandatory",
				"Industry-specific hashtags",
				"Thought leadership angle",
				"Posts truncated at ~200 chars with 'See more'",
				"Professional keywords important for search",
			},
			MaxLengths: map[Field]int{
				FieldPostBody:          3000,
				FieldHeadline:          220,
				FieldAboutSection:      2600,
				FieldComments:          1250,
				FieldConnectionMessage: 300,
			},
			OptimalLengths: map[Field]int{
				FieldPostBody: 200,
			},
		},
		{
			Platform:       PlatformTwitch,
			TitleMaxLength: 140,
			TagMinCount:    3,
			TagMaxCount:    8,
			ContentStyle:   StyleGamingCommunity,
			StyleGuidelines: []string{
				"Gaming and streaming focused",
				"Community-oriented",
				"Interactive content emphasis",
				"Gaming terminology usage",
			},
			SpecialRequirements: []string{
				"Gaming categories focus",
				"Community interaction emphasis",
				"Streaming-specific language",
				"Stream title should be descriptive of content",
				"Category selection affects discoverability",
			},
			MaxLengths: map[Field]int{
				FieldBio:            300,
				FieldStreamCategory: 50,
			},
		},
	}
}
