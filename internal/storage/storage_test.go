package storage

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("", true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func playedRecord(t *testing.T, id string) model.GameRecord {
	t.Helper()
	g := model.NewGame(id)
	for _, player := range []string{"alice", "bob"} {
		if _, err := g.AddPlayer(player); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Select("alice", 2, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := g.MakeMove("alice", 4, 5); err != nil {
		t.Fatal(err)
	}
	return g.Record()
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTestStorage(t)
	record := playedRecord(t, "game-1")

	if err := s.SaveGame(record); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	loaded, err := s.LoadGame("game-1")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if diff := cmp.Diff(record, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("loaded record mismatch (-want +got):\n%s", diff)
	}

	restored, err := model.RestoreGame(loaded)
	if err != nil {
		t.Fatalf("RestoreGame: %v", err)
	}
	if restored.GetState().ToMove != model.PlayerColorBlack {
		t.Error("restored game lost the turn")
	}
}

func TestSaveGameOverwrites(t *testing.T) {
	s := openTestStorage(t)

	first := model.NewGame("game-1").Record()
	if err := s.SaveGame(first); err != nil {
		t.Fatal(err)
	}
	second := playedRecord(t, "game-1")
	if err := s.SaveGame(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadGame("game-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ToMove != model.PlayerColorBlack || loaded.LastMove == nil {
		t.Errorf("loaded the stale record: %+v", loaded)
	}
}

func TestLoadMissingGame(t *testing.T) {
	s := openTestStorage(t)

	if _, err := s.LoadGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame error = %v; want ErrGameNotFound", err)
	}
}

func TestListAndDeleteGames(t *testing.T) {
	s := openTestStorage(t)

	for _, id := range []string{"b", "a", "c"} {
		if err := s.SaveGame(model.NewGame(id).Record()); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := s.ListGameIDs()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("ListGameIDs mismatch (-want +got):\n%s", diff)
	}

	if err := s.DeleteGame("b"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteGame("missing"); err != nil {
		t.Errorf("DeleteGame on a missing id: %v", err)
	}
	if _, err := s.LoadGame("b"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete error = %v; want ErrGameNotFound", err)
	}

	ids, err = s.ListGameIDs()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids); diff != "" {
		t.Errorf("ListGameIDs mismatch (-want +got):\n%s", diff)
	}
}
