package http

import (
	"encoding/json"
	"strings"

	"github.com/syncwatch/server/internal/core"
	"github.com/syncwatch/server/internal/proto"
)

// maxChatTextLen bounds a single chat message.
const maxChatTextLen = 2000

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(join.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.RoomID,
			Nick: strings.TrimSpace(join.Nick),
		}, nil, nil

	case proto.InboundTypeVideoPlay:
		var play proto.VideoPlayData
		if err := json.Unmarshal(inbound.Data, &play); err != nil {
			return nil, nil, err
		}
		// Video ids pass through unvalidated; rendering is the client's problem.
		return &core.Command{
			Kind:  core.CommandSetVideo,
			Video: core.Video{ID: play.VideoID, Title: play.Title},
		}, nil, nil

	case proto.InboundTypeVideoState:
		var state proto.VideoStateData
		if err := json.Unmarshal(inbound.Data, &state); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:     core.CommandPlaybackState,
			Playback: core.Playback{Action: state.Action, Time: state.Time},
		}, nil, nil

	case proto.InboundTypeSearchResults:
		var share proto.SearchResultsData
		if err := json.Unmarshal(inbound.Data, &share); err != nil {
			return nil, nil, err
		}
		if share.Kind != "video" && share.Kind != "web" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "kind must be video or web"}, nil
		}
		return &core.Command{
			Kind:   core.CommandShareSearch,
			Search: core.SearchShare{Kind: share.Kind, Query: share.Query, Results: share.Results},
		}, nil, nil

	case proto.InboundTypeBrowseURL:
		var browse proto.BrowseURLData
		if err := json.Unmarshal(inbound.Data, &browse); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(browse.URL) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "url is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSetBrowseURL,
			URL:  browse.URL,
		}, nil, nil

	case proto.InboundTypeChatMessage:
		var chat proto.ChatMessageData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(chat.Text) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		if len(chat.Text) > maxChatTextLen {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is too long"}, nil
		}
		return &core.Command{
			Kind: core.CommandPostChat,
			Text: chat.Text,
		}, nil, nil

	case proto.InboundTypeCallInitiate, proto.InboundTypeCallAccept, proto.InboundTypeCallEnd:
		var signal proto.CallSignalData
		if err := json.Unmarshal(inbound.Data, &signal); err != nil {
			return nil, nil, err
		}
		kind := core.CommandCallInitiate
		switch inbound.Type {
		case proto.InboundTypeCallAccept:
			kind = core.CommandCallAccept
		case proto.InboundTypeCallEnd:
			kind = core.CommandCallEnd
		}
		if kind != core.CommandCallEnd && signal.To == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "to is required"}, nil
		}
		return &core.Command{
			Kind: kind,
			Call: core.CallSignal{To: signal.To, Signal: signal.Signal},
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomState:
		return eventOutbound(proto.EventRoomState, roomStateData(event.Snapshot))

	case core.EventUserList:
		users := make([]proto.UserInfo, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, proto.UserInfo{Nick: u.Nick, SessionID: u.SessionID})
		}
		return eventOutbound(proto.EventUserList, users)

	case core.EventChatMessage:
		return eventOutbound(proto.EventChatMessage, chatEntry(*event.Message))

	case core.EventVideoStarted:
		return eventOutbound(proto.EventVideoPlay, proto.VideoPlayEvent{
			VideoID:   event.Video.Video.ID,
			Title:     event.Video.Video.Title,
			StartedBy: event.Video.StartedBy,
		})

	case core.EventPlaybackState:
		return eventOutbound(proto.EventVideoState, proto.VideoStateEvent{
			Action: event.Playback.Action,
			Time:   event.Playback.Time,
			From:   event.Playback.From,
		})

	case core.EventSearchResults:
		return eventOutbound(proto.EventSearchResults, proto.SearchResultsEvent{
			Kind:       event.Search.Kind,
			Query:      event.Search.Query,
			Results:    event.Search.Results,
			SearchedBy: event.Search.SearchedBy,
		})

	case core.EventBrowseURL:
		return eventOutbound(proto.EventBrowseURL, proto.BrowseURLEvent{
			URL:      event.Browse.URL,
			SharedBy: event.Browse.SharedBy,
		})

	case core.EventCallIncoming:
		return eventOutbound(proto.EventCallIncoming, callSignalEvent(event.Call))
	case core.EventCallAccepted:
		return eventOutbound(proto.EventCallAccepted, callSignalEvent(event.Call))
	case core.EventCallEnded:
		return eventOutbound(proto.EventCallEnded, callSignalEvent(event.Call))

	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}

	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func eventOutbound(name string, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: name, Data: data}
}

func roomStateData(s *core.Snapshot) proto.RoomStateData {
	history := make([]proto.ChatEntry, 0, len(s.ChatHistory))
	for _, msg := range s.ChatHistory {
		history = append(history, chatEntry(msg))
	}

	var video *proto.VideoInfo
	if s.CurrentVideo != nil {
		video = &proto.VideoInfo{VideoID: s.CurrentVideo.ID, Title: s.CurrentVideo.Title}
	}
	return proto.RoomStateData{
		CurrentVideo: video,
		BrowseURL:    s.BrowseURL,
		ChatHistory:  history,
	}
}

func chatEntry(msg core.ChatMessage) proto.ChatEntry {
	return proto.ChatEntry{
		Nick: msg.Nick,
		Text: msg.Text,
		TS:   msg.SentAt.Unix(),
	}
}

func callSignalEvent(call *core.CallSignalEvent) proto.CallSignalEvent {
	return proto.CallSignalEvent{
		From:     call.From,
		FromNick: call.FromNick,
		Signal:   call.Signal,
	}
}
