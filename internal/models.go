package internal

type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

type AccountData struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type MatchRecord struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation int64              `json:"gameCreation"`
	GameDuration int                `json:"gameDuration"`
	GameMode     string             `json:"gameMode"`
	QueueID      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	PUUID        string `json:"puuid"`
	ChampionName string `json:"championName"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Win          bool   `json:"win"`
}

// MatchSummary is the caller-facing projection of one match. The
// participant-sourced fields are pointers: when the player has no entry in
// the record they are omitted entirely, not zeroed.
type MatchSummary struct {
	MatchID      string  `json:"matchId"`
	GameMode     string  `json:"gameMode"`
	Win          *bool   `json:"win,omitempty"`
	ChampionName *string `json:"championName,omitempty"`
	Kills        *int    `json:"kills,omitempty"`
	Deaths       *int    `json:"deaths,omitempty"`
	Assists      *int    `json:"assists,omitempty"`
}

type MatchHistoryResponse struct {
	Matches []MatchSummary `json:"matches"`
	Message string         `json:"message,omitempty"`
}

type HistoryFetchedEvent struct {
	Summoner   string `json:"summoner"`
	PUUID      string `json:"puuid"`
	Region     string `json:"region"`
	MatchCount int    `json:"matchCount"`
	FetchedAt  int64  `json:"fetchedAt"`
}
