package rpc

import (
	"context"
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/spaceshooter/logger"
	"github.com/wfunc/spaceshooter/models"
	"github.com/wfunc/spaceshooter/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

const rpcTimeout = 5 * time.Second

// StatsService exposes leaderboard and collection stats to ops
// tooling over net/rpc. Methods follow the net/rpc signature rules:
// exported method, exported args, pointer reply, error return.
type StatsService struct {
	gameService *services.GameService
}

// NewStatsService creates a new StatsService.
func NewStatsService(gs *services.GameService) *StatsService {
	return &StatsService{gameService: gs}
}

type TopScoresArgs struct {
	Limit int
}

type TopScoresReply struct {
	Scores []models.HighScore
}

func (ss *StatsService) TopScores(args *TopScoresArgs, reply *TopScoresReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	scores, err := ss.gameService.Leaderboard(ctx, args.Limit)
	if err != nil {
		return err
	}
	reply.Scores = scores
	return nil
}

type CountsArgs struct{}

type CountsReply struct {
	SavedGames int64
	HighScores int64
}

func (ss *StatsService) Counts(args *CountsArgs, reply *CountsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	games, scores, err := ss.gameService.Counts(ctx)
	if err != nil {
		return err
	}
	reply.SavedGames = games
	reply.HighScores = scores
	return nil
}
