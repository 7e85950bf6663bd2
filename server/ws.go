package server

import (
	"github.com/gin-gonic/gin"

	"github.com/wfunc/spaceshooter/logger"
)

// handleLeaderboardFeed upgrades the connection and registers it with
// the live feed. The read loop exists only to notice the peer closing;
// inbound frames are discarded.
func (s *APIServer) handleLeaderboardFeed(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}

	id := s.feed.Subscribe(conn)
	logger.Log.Infof("Live subscriber %s connected from %s", id, conn.RemoteAddr())
	if s.monitor != nil {
		s.monitor.SetLiveSubscribers(s.feed.Count())
	}

	go func() {
		defer func() {
			s.feed.Unsubscribe(id)
			if s.monitor != nil {
				s.monitor.SetLiveSubscribers(s.feed.Count())
			}
			logger.Log.Infof("Live subscriber %s disconnected", id)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
