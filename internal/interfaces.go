package internal

import (
	"context"
)

type RiotAPI interface {
	GetSummonerByName(ctx context.Context, name string) (*Summoner, error)
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountData, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*MatchRecord, error)
}

type HistoryProvider interface {
	GetMatchHistory(ctx context.Context, handle string) (*MatchHistoryResponse, error)
}

type RateLimiterInterface interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type EventPublisher interface {
	PublishHistoryFetched(event HistoryFetchedEvent) error
}
