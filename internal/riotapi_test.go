package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func createTestRiotClient(baseURL string) *RiotAPIClient {
	cfg := &Config{
		RiotAPIKey:      "test-key",
		RiotRegion:      "NA1",
		RiotPlatformURL: baseURL,
		RiotRoutingURL:  baseURL,
	}
	return NewRiotAPIClient(cfg, createTestLogger(), nil)
}

func TestRiotAPIClient_DoRequest_AttachesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "test-key" {
			t.Error("missing or incorrect riot token header")
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"test": "data"})
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	data, err := client.doRequest(context.Background(), "test", server.URL)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	var result map[string]string
	json.Unmarshal(data, &result)

	if result["test"] != "data" {
		t.Errorf("expected test data, got %v", result)
	}
}

func TestRiotAPIClient_DoRequest_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Forbidden"))
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	_, err := client.doRequest(context.Background(), "test", server.URL)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var riotErr *RiotAPIError
	if !errors.As(err, &riotErr) {
		t.Fatalf("expected RiotAPIError, got %T", err)
	}
	if riotErr.Status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", riotErr.Status)
	}
	if riotErr.Message != "Forbidden" {
		t.Errorf("expected message from response body, got %q", riotErr.Message)
	}
}

func TestRiotAPIClient_DoRequest_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := createTestRiotClient(url)

	_, err := client.doRequest(context.Background(), "test", url)
	var riotErr *RiotAPIError
	if !errors.As(err, &riotErr) {
		t.Fatalf("expected RiotAPIError, got %v", err)
	}
	if riotErr.Status != 0 {
		t.Errorf("expected status 0 for transport failure, got %d", riotErr.Status)
	}
}

func TestRiotAPIClient_GetSummonerByName_EscapesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lol/summoner/v4/summoners/by-name/Hide on bush" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(Summoner{PUUID: "P1", Name: "Hide on bush"})
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	result, err := client.GetSummonerByName(context.Background(), "Hide on bush")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.PUUID != "P1" {
		t.Errorf("expected PUUID P1, got %s", result.PUUID)
	}
}

func TestRiotAPIClient_GetAccountByRiotID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedPath := "/riot/account/v1/accounts/by-riot-id/Player/NA1"
		if r.URL.Path != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AccountData{PUUID: "P2", GameName: "Player", TagLine: "NA1"})
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	result, err := client.GetAccountByRiotID(context.Background(), "Player", "NA1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.PUUID != "P2" {
		t.Errorf("expected PUUID P2, got %s", result.PUUID)
	}
}

func TestRiotAPIClient_GetMatchIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedPath := "/lol/match/v5/matches/by-puuid/P1/ids"
		if r.URL.Path != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, r.URL.Path)
		}
		if got := r.URL.Query().Get("count"); got != "5" {
			t.Errorf("expected count 5, got %s", got)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]string{"NA1_1", "NA1_2"})
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	ids, err := client.GetMatchIDs(context.Background(), "P1", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ids) != 2 || ids[0] != "NA1_1" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestRiotAPIClient_GetMatch(t *testing.T) {
	record := MatchRecord{
		Metadata: MatchMetadata{MatchID: "NA1_42", Participants: []string{"P1"}},
		Info: MatchInfo{
			GameMode: "ARAM",
			Participants: []MatchParticipant{
				{PUUID: "P1", ChampionName: "Lux", Kills: 8, Deaths: 3, Assists: 20, Win: true},
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lol/match/v5/matches/NA1_42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(record)
	}))
	defer server.Close()

	client := createTestRiotClient(server.URL)

	result, err := client.GetMatch(context.Background(), "NA1_42")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Metadata.MatchID != "NA1_42" {
		t.Errorf("expected matchId NA1_42, got %s", result.Metadata.MatchID)
	}
	if result.Info.GameMode != "ARAM" {
		t.Errorf("expected gameMode ARAM, got %s", result.Info.GameMode)
	}
	if len(result.Info.Participants) != 1 || result.Info.Participants[0].ChampionName != "Lux" {
		t.Errorf("unexpected participants: %+v", result.Info.Participants)
	}
}

func TestRiotAPIError_Error(t *testing.T) {
	withStatus := &RiotAPIError{Status: 404, Message: "not found"}
	if withStatus.Error() != "riot API error: status 404 - not found" {
		t.Errorf("unexpected error string: %s", withStatus.Error())
	}

	transport := &RiotAPIError{Message: "connection refused"}
	if transport.Error() != "riot API request failed: connection refused" {
		t.Errorf("unexpected error string: %s", transport.Error())
	}
}
