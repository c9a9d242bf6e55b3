package internal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// matchWindow is the fixed prefix of the most-recent-first match listing
// that one history request fetches.
const matchWindow = 5

var (
	ErrAPIKeyMissing = errors.New("riot API key is not configured")
	ErrEmptyHandle   = errors.New("summoner name is required")
)

type HistoryService struct {
	riot      RiotAPI
	publisher EventPublisher
	logger    *Logger
	apiKey    string
	region    string
}

func NewHistoryService(cfg *Config, riot RiotAPI, publisher EventPublisher, logger *Logger) *HistoryService {
	return &HistoryService{
		riot:      riot,
		publisher: publisher,
		logger:    logger,
		apiKey:    cfg.RiotAPIKey,
		region:    cfg.RiotRegion,
	}
}

// GetMatchHistory resolves the handle to a PUUID, lists the recent match
// window, fetches every match record concurrently and projects each one down
// to a MatchSummary. Any remote failure aborts the whole request; the one
// success path that is not a full result is an empty listing, which returns
// zero matches with an explanatory message.
func (s *HistoryService) GetMatchHistory(ctx context.Context, handle string) (*MatchHistoryResponse, error) {
	if s.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrEmptyHandle
	}

	start := time.Now()

	puuid, err := s.resolveIdentity(ctx, handle)
	if err != nil {
		return nil, err
	}

	matchIDs, err := s.riot.GetMatchIDs(ctx, puuid, matchWindow)
	if err != nil {
		return nil, err
	}

	if len(matchIDs) == 0 {
		s.logger.Info("no_recent_matches").
			Component("history").
			Operation("get_match_history").
			Summoner(handle).
			Player(puuid, s.region).
			Log()
		return &MatchHistoryResponse{
			Matches: []MatchSummary{},
			Message: "No recent matches found.",
		}, nil
	}

	records, err := s.fetchMatches(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]MatchSummary, len(records))
	for i, record := range records {
		summaries[i] = ProjectSummary(record, puuid)
	}

	s.logger.Info("match_history_fetched").
		Component("history").
		Operation("get_match_history").
		Summoner(handle).
		Player(puuid, s.region).
		Duration(time.Since(start)).
		Meta("match_count", len(summaries)).
		Log()

	s.publishFetched(handle, puuid, len(summaries))

	return &MatchHistoryResponse{Matches: summaries}, nil
}

// resolveIdentity maps a caller-supplied handle to a PUUID. Handles with a
// tag ("name#tag") go through the account-v1 riot-id endpoint on the routing
// base; bare names fall back to the legacy summoner-v4 platform endpoint.
func (s *HistoryService) resolveIdentity(ctx context.Context, handle string) (string, error) {
	var puuid string

	if name, tag, ok := strings.Cut(handle, "#"); ok && tag != "" {
		account, err := s.riot.GetAccountByRiotID(ctx, name, tag)
		if err != nil {
			return "", err
		}
		puuid = account.PUUID
	} else {
		summoner, err := s.riot.GetSummonerByName(ctx, handle)
		if err != nil {
			return "", err
		}
		puuid = summoner.PUUID
	}

	if puuid == "" {
		// A 2xx response without an identifier is still a lookup miss.
		return "", &RiotAPIError{
			Status:  http.StatusNotFound,
			Message: "no player identifier in resolution response",
		}
	}

	return puuid, nil
}

// fetchMatches issues every detail fetch concurrently. The group context
// cancels the remaining in-flight fetches as soon as one fails. Results keep
// the listing order.
func (s *HistoryService) fetchMatches(ctx context.Context, matchIDs []string) ([]*MatchRecord, error) {
	g, ctx := errgroup.WithContext(ctx)
	records := make([]*MatchRecord, len(matchIDs))

	for i, matchID := range matchIDs {
		g.Go(func() error {
			record, err := s.riot.GetMatch(ctx, matchID)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// ProjectSummary reduces one match record to the per-player summary. At most
// one participant entry carries the player's PUUID; when none does (remote
// ingestion gaps, unsupported modes) the participant-sourced fields stay
// absent instead of failing the request.
func ProjectSummary(record *MatchRecord, puuid string) MatchSummary {
	summary := MatchSummary{
		MatchID:  record.Metadata.MatchID,
		GameMode: record.Info.GameMode,
	}

	for i := range record.Info.Participants {
		p := &record.Info.Participants[i]
		if p.PUUID != puuid {
			continue
		}
		win := p.Win
		champion := p.ChampionName
		kills := p.Kills
		deaths := p.Deaths
		assists := p.Assists
		summary.Win = &win
		summary.ChampionName = &champion
		summary.Kills = &kills
		summary.Deaths = &deaths
		summary.Assists = &assists
		break
	}

	return summary
}

// publishFetched emits the audit event without blocking the response.
func (s *HistoryService) publishFetched(handle, puuid string, matchCount int) {
	if s.publisher == nil {
		return
	}

	event := HistoryFetchedEvent{
		Summoner:   handle,
		PUUID:      puuid,
		Region:     s.region,
		MatchCount: matchCount,
		FetchedAt:  time.Now().Unix(),
	}

	go func() {
		if err := s.publisher.PublishHistoryFetched(event); err != nil {
			s.logger.Warn("history_event_publish_failed").
				Component("history").
				Operation("publish_fetched").
				Summoner(handle).
				Err(err).
				Log()
		}
	}()
}
