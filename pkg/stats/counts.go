package stats

import (
	"os"

	"github.com/epilog-dev/epilog/pkg/trajectory"
)

// Episode outcomes as counted by the count report. Unlike the other
// reports, counting includes episodes with no actions at all.
const (
	OutcomeWin      = "win"
	OutcomeLoss     = "loss"
	OutcomeNoAction = "no_action"
)

// FileStats aggregates totals for one source file.
type FileStats struct {
	Episodes     int     `json:"episodes"`
	TotalActions int     `json:"total_actions"`
	TotalStates  int     `json:"total_states"`
	TotalReward  float64 `json:"total_reward"`
	SizeBytes    int64   `json:"size_bytes"`
}

// EpisodeDetail is the per-episode record emitted by the count report.
type EpisodeDetail struct {
	File            string   `json:"file"`
	Line            int      `json:"line_num"`
	AgentName       string   `json:"agent_name"`
	AgentRole       string   `json:"agent_role"`
	EndReason       string   `json:"end_reason"`
	Outcome         string   `json:"outcome"`
	NumStates       int      `json:"num_states"`
	NumActions      int      `json:"num_actions"`
	NumRewards      int      `json:"num_rewards"`
	TotalReward     float64  `json:"total_reward"`
	FinalReward     *float64 `json:"final_reward"`
	FinalAction     string   `json:"final_action"`
	ControlledHosts int      `json:"num_controlled_hosts"`
	KnownHosts      int      `json:"num_known_hosts"`
	KnownNetworks   int      `json:"num_known_networks"`
}

// CountCollector counts episodes per file and across breakdown dimensions.
type CountCollector struct {
	TotalEpisodes int
	FileOrder     []string
	Files         map[string]*FileStats
	ByAgent       map[string]int
	ByRole        map[string]int
	ByEndReason   map[string]int
	ByOutcome     map[string]int
	ByFinalAction map[string]int
	Details       []EpisodeDetail
}

// NewCountCollector creates an empty count collector.
func NewCountCollector() *CountCollector {
	return &CountCollector{
		Files:         make(map[string]*FileStats),
		ByAgent:       make(map[string]int),
		ByRole:        make(map[string]int),
		ByEndReason:   make(map[string]int),
		ByOutcome:     make(map[string]int),
		ByFinalAction: make(map[string]int),
	}
}

// Collect records one episode in the per-file and breakdown tallies.
func (c *CountCollector) Collect(ep *trajectory.Episode, ctx *CollectContext) {
	c.TotalEpisodes++

	fs, ok := c.Files[ep.File]
	if !ok {
		fs = &FileStats{}
		c.Files[ep.File] = fs
		c.FileOrder = append(c.FileOrder, ep.File)
	}
	fs.Episodes++
	fs.TotalActions += ep.Steps()
	fs.TotalStates += len(ep.Trajectory.States)
	fs.TotalReward += ep.TotalReward()

	detail := EpisodeDetail{
		File:        ep.File,
		Line:        ep.Line,
		AgentName:   ep.AgentName,
		AgentRole:   ep.AgentRole,
		EndReason:   ep.EndReason,
		NumStates:   len(ep.Trajectory.States),
		NumActions:  ep.Steps(),
		NumRewards:  len(ep.Trajectory.Rewards),
		TotalReward: ep.TotalReward(),
	}

	if final, ok := ep.FinalReward(); ok {
		detail.FinalReward = &final
		if final >= ctx.WinThreshold {
			detail.Outcome = OutcomeWin
		} else {
			detail.Outcome = OutcomeLoss
		}
	} else {
		detail.Outcome = OutcomeNoAction
	}

	if action := ep.FinalAction(); action != nil {
		detail.FinalAction = action.Type()
		c.ByFinalAction[detail.FinalAction]++
	}

	if st := ep.FinalState(); st != nil {
		detail.ControlledHosts = countDistinctHosts(st.ControlledHosts)
		detail.KnownHosts = countDistinctHosts(st.KnownHosts)
		detail.KnownNetworks = countDistinctNetworks(st.KnownNetworks)
	}

	c.ByAgent[ep.AgentName]++
	c.ByRole[ep.AgentRole]++
	c.ByEndReason[ep.EndReason]++
	c.ByOutcome[detail.Outcome]++
	c.Details = append(c.Details, detail)
}

// Finalize stats the source files for their sizes.
func (c *CountCollector) Finalize(ctx *CollectContext) {
	for path, fs := range c.Files {
		if info, err := os.Stat(path); err == nil {
			fs.SizeBytes = info.Size()
		}
	}
}

func countDistinctHosts(hosts []trajectory.Host) int {
	seen := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		seen[h.IP] = true
	}
	return len(seen)
}

func countDistinctNetworks(nets []trajectory.Network) int {
	seen := make(map[trajectory.Network]bool, len(nets))
	for _, n := range nets {
		seen[n] = true
	}
	return len(seen)
}
