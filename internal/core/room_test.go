package core

import (
	"fmt"
	"testing"
)

func TestRoomJoinSnapshotReflectsCurrentState(t *testing.T) {
	room := NewRoom("ABC123DE")

	alice := NewSession("a", "Alice")
	snapshot, sys := room.Join(alice, "Alice")

	if snapshot.CurrentVideo != nil {
		t.Fatalf("fresh room should have no current video, got %+v", snapshot.CurrentVideo)
	}
	if sys.Nick != SystemNick || sys.Text != "Alice joined the room" {
		t.Fatalf("unexpected join system message: %+v", sys)
	}

	room.SetVideo(Video{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up"}, "Alice")
	room.SetBrowseURL("https://example.com", "Alice")
	room.PostChat("hello", "Alice")

	bob := NewSession("b", "Bob")
	snapshot, _ = room.Join(bob, "Bob")

	if snapshot.CurrentVideo == nil || snapshot.CurrentVideo.ID != "dQw4w9WgXcQ" || snapshot.CurrentVideo.Title != "Never Gonna Give You Up" {
		t.Fatalf("snapshot video mismatch: %+v", snapshot.CurrentVideo)
	}
	if snapshot.BrowseURL != "https://example.com" {
		t.Fatalf("snapshot browse url mismatch: %q", snapshot.BrowseURL)
	}
	// Alice's join notice and her chat message. Bob's own notice goes out
	// as a broadcast only; replaying it in the snapshot would render it
	// twice on his client.
	if len(snapshot.ChatHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %+v", snapshot.ChatHistory)
	}
	if snapshot.ChatHistory[1].Text != "hello" || snapshot.ChatHistory[1].Nick != "Alice" {
		t.Fatalf("unexpected history entry: %+v", snapshot.ChatHistory[1])
	}
	for _, entry := range snapshot.ChatHistory {
		if entry.Text == "Bob joined the room" {
			t.Fatalf("joiner's snapshot contains their own join notice: %+v", snapshot.ChatHistory)
		}
	}
	// The notice still lands in the history for the next joiner.
	if tail := room.chatHistory[len(room.chatHistory)-1]; tail.Text != "Bob joined the room" {
		t.Fatalf("join notice missing from stored history, tail is %+v", tail)
	}
}

func TestRoomChatHistoryCapEvictsOldestFirst(t *testing.T) {
	room := NewRoom("R1")

	for i := 1; i <= ChatHistoryLimit+20; i++ {
		room.PostChat(fmt.Sprintf("msg-%d", i), "Alice")
		if n := len(room.chatHistory); n > ChatHistoryLimit {
			t.Fatalf("history grew past cap after post %d: %d", i, n)
		}
	}

	if len(room.chatHistory) != ChatHistoryLimit {
		t.Fatalf("expected %d entries, got %d", ChatHistoryLimit, len(room.chatHistory))
	}
	if room.chatHistory[0].Text != "msg-21" {
		t.Fatalf("oldest entries should be evicted first, head is %q", room.chatHistory[0].Text)
	}
	if room.chatHistory[ChatHistoryLimit-1].Text != fmt.Sprintf("msg-%d", ChatHistoryLimit+20) {
		t.Fatalf("newest entry missing, tail is %q", room.chatHistory[ChatHistoryLimit-1].Text)
	}
}

func TestRoomMembershipAccounting(t *testing.T) {
	room := NewRoom("R1")

	sessions := make([]*Session, 0, 5)
	for i := 0; i < 5; i++ {
		s := NewSession(fmt.Sprintf("s%d", i), fmt.Sprintf("user%d", i))
		room.Join(s, s.Nick)
		sessions = append(sessions, s)
	}
	if got := len(room.Users()); got != 5 {
		t.Fatalf("expected 5 members, got %d", got)
	}

	for _, s := range sessions[:3] {
		if _, _, ok := room.Leave(s.ID); !ok {
			t.Fatalf("leave for %s should succeed", s.ID)
		}
	}
	if got := len(room.Users()); got != 2 {
		t.Fatalf("expected 2 members after 3 leaves, got %d", got)
	}

	// Leaving twice is a no-op, never negative.
	if _, _, ok := room.Leave(sessions[0].ID); ok {
		t.Fatal("second leave for the same session should be a no-op")
	}
	if got := len(room.Users()); got != 2 {
		t.Fatalf("member count changed on duplicate leave: %d", got)
	}
}

func TestRoomUsersKeepJoinOrder(t *testing.T) {
	room := NewRoom("R1")

	for _, nick := range []string{"Alice", "Bob", "Carol"} {
		s := NewSession(nick, nick)
		room.Join(s, nick)
	}
	room.Leave("Bob")

	users := room.Users()
	if len(users) != 2 || users[0].Nick != "Alice" || users[1].Nick != "Carol" {
		t.Fatalf("unexpected user order: %+v", users)
	}
}

func TestRoomPlaybackStateDoesNotMutate(t *testing.T) {
	room := NewRoom("R1")
	room.SetVideo(Video{ID: "abc12345678", Title: "Demo"}, "Alice")

	update := room.PlaybackState("pause", 42.5, "Alice")
	if update.Action != "pause" || update.Time != 42.5 || update.From != "Alice" {
		t.Fatalf("unexpected playback update: %+v", update)
	}

	// The stored state only remembers the last started video, never the
	// playhead.
	bob := NewSession("b", "Bob")
	snapshot, _ := room.Join(bob, "Bob")
	if snapshot.CurrentVideo == nil || snapshot.CurrentVideo.ID != "abc12345678" {
		t.Fatalf("snapshot lost the current video: %+v", snapshot.CurrentVideo)
	}
}

func TestRoomLastWriteWinsOnSetVideo(t *testing.T) {
	room := NewRoom("R1")

	room.SetVideo(Video{ID: "first000001", Title: "First"}, "Alice")
	start := room.SetVideo(Video{ID: "second00002", Title: "Second"}, "Bob")

	if start.StartedBy != "Bob" {
		t.Fatalf("unexpected actor: %q", start.StartedBy)
	}
	if room.currentVideo.ID != "second00002" {
		t.Fatalf("expected last write to win, got %q", room.currentVideo.ID)
	}
}
