package config

// Default は本番サーバーのチャンネル・ロール構成を返す
func Default() *Config {
	return &Config{
		HTTPAddr:       ":8080",
		DBPath:         "file::memory:?cache=shared",
		Timezone:       "Asia/Seoul",
		Presence:       "총괄 갈구는 중",
		NicknamePrefix: "!닉",
		CommandPrefix:  "!",
		Channels: Channels{
			Reminder: "1305041229787959306",
			Nickname: "1331989813326385192",
			Journal:  "1312717054427795476",
			Roles:    "1322148577803505705",
		},
		Policies: []ChannelPolicy{
			{
				ChannelID:    "1298225692776857701",
				Kind:         PolicyLinkOnly,
				ThreadName:   "💬 {name}의 링크 토론",
				ThreadPrompt: "{mention}님의 링크에 대해 이야기를 나눠보세요!",
				Warning:      "{mention} 이 채널에서는 링크만 공유할 수 있습니다. 링크에 대한 대화는 스레드에서 진행해주세요.",
			},
			{
				ChannelID:    "1298228940636291092",
				Kind:         PolicyImageOnly,
				ThreadName:   "🖼️ {name}의 이미지 토론",
				ThreadPrompt: "{mention}님의 이미지에 대해 이야기를 나눠보세요!",
				Warning:      "{mention} 이 채널에서는 이미지만 공유할 수 있습니다. 이미지에 대한 대화는 스레드에서 진행해주세요.",
			},
			{
				ChannelID:    "1298228725594325012",
				Kind:         PolicyImageOnly,
				ThreadName:   "👤 {name}의 얼공방",
				ThreadPrompt: "{mention}님의 이미지에 대해 이야기를 나눠보세요!",
				Warning:      "{mention} 이 채널에서는 이미지만 공유할 수 있습니다. 이미지에 대한 대화는 스레드에서 진행해주세요.",
			},
			{
				ChannelID:    "1298228896176541716",
				Kind:         PolicyImageOnly,
				ThreadName:   "👤 {name}의 얼공방",
				ThreadPrompt: "{mention}님의 이미지에 대해 이야기를 나눠보세요!",
				Warning:      "{mention} 이 채널에서는 이미지만 공유할 수 있습니다. 이미지에 대한 대화는 스레드에서 진행해주세요.",
			},
		},
		Roles: []RoleDefinition{
			{ID: "1322154373190778880", Label: "발로란트", Emoji: "🎮", Group: RoleGroupGame, Style: "primary"},
			{ID: "1322154516761546824", Label: "마인크래프트", Emoji: "⛏️", Group: RoleGroupGame, Style: "success"},
			{ID: "1322154677709570069", Label: "배그", Emoji: "🔫", Group: RoleGroupGame, Style: "danger"},
			{ID: "1322154739948982312", Label: "옵치", Emoji: "🛡️", Group: RoleGroupGame, Style: "primary"},
			{ID: "1322154861223088128", Label: "스팀", Emoji: "🎲", Group: RoleGroupGame, Style: "success"},
			{ID: "1322158699225284628", Label: "기타게임", Emoji: "🎯", Group: RoleGroupGame, Style: "secondary"},
			{ID: "1336603078316523581", Label: "커플", Emoji: "💑", Group: RoleGroupStatus, Style: "success"},
			{ID: "1336604788321685504", Label: "솔로", Emoji: "🙋", Group: RoleGroupStatus, Style: "danger"},
			{ID: "1336599444333789224", Label: "디코하자", Emoji: "🎧", Group: RoleGroupToggle, Style: "primary"},
		},
	}
}
