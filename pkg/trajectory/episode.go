// Package trajectory defines the episode record format used by game
// trajectory logs and a streaming JSONL reader for them.
package trajectory

// Episode is a single line of a trajectory JSONL file: one game episode
// played by one agent.
type Episode struct {
	AgentName  string     `json:"agent_name,omitempty"`
	AgentRole  string     `json:"agent_role,omitempty"`
	EndReason  string     `json:"end_reason,omitempty"`
	Trajectory Trajectory `json:"trajectory"`

	// Source location, filled in by the reader.
	File string `json:"-"`
	Line int    `json:"-"`
}

// Trajectory holds the parallel state/action/reward sequences of an episode.
type Trajectory struct {
	States  []State   `json:"states,omitempty"`
	Actions []Action  `json:"actions,omitempty"`
	Rewards []float64 `json:"rewards,omitempty"`
}

// Action is a free-form action record. In practice every action carries an
// action_type and a parameters object, but nothing is guaranteed, so the
// full value is kept.
type Action map[string]interface{}

// Type returns the action_type field, or "" if absent.
func (a Action) Type() string {
	if t, ok := a["action_type"].(string); ok {
		return t
	}
	return ""
}

// Host is a host reference in a game state.
type Host struct {
	IP string `json:"ip"`
}

// Network is a network reference in a game state.
type Network struct {
	IP   string `json:"ip"`
	Mask int    `json:"mask"`
}

// State is the observable game state at one step. Only the entity lists
// needed for reporting are parsed; commands that need the raw record parse
// the line themselves.
type State struct {
	KnownNetworks   []Network              `json:"known_networks,omitempty"`
	KnownHosts      []Host                 `json:"known_hosts,omitempty"`
	ControlledHosts []Host                 `json:"controlled_hosts,omitempty"`
	KnownServices   map[string]interface{} `json:"known_services,omitempty"`
	KnownData       map[string]interface{} `json:"known_data,omitempty"`
}

// Steps returns the number of actions taken in the episode.
func (e *Episode) Steps() int {
	return len(e.Trajectory.Actions)
}

// HasActions reports whether the episode contains at least one action.
// Episodes without actions are excluded from most statistics.
func (e *Episode) HasActions() bool {
	return len(e.Trajectory.Actions) > 0
}

// TotalReward returns the sum of all rewards.
func (e *Episode) TotalReward() float64 {
	var total float64
	for _, r := range e.Trajectory.Rewards {
		total += r
	}
	return total
}

// FinalReward returns the last reward and whether one exists.
func (e *Episode) FinalReward() (float64, bool) {
	if len(e.Trajectory.Rewards) == 0 {
		return 0, false
	}
	return e.Trajectory.Rewards[len(e.Trajectory.Rewards)-1], true
}

// FinalAction returns the last action, or nil if there are none.
func (e *Episode) FinalAction() Action {
	if len(e.Trajectory.Actions) == 0 {
		return nil
	}
	return e.Trajectory.Actions[len(e.Trajectory.Actions)-1]
}

// FinalState returns the last state, or nil if there are none.
func (e *Episode) FinalState() *State {
	if len(e.Trajectory.States) == 0 {
		return nil
	}
	return &e.Trajectory.States[len(e.Trajectory.States)-1]
}

// IsWin reports whether the episode ended in a win: the final reward meets
// the threshold (a successful game ends with a large terminal reward).
func (e *Episode) IsWin(threshold float64) bool {
	final, ok := e.FinalReward()
	return ok && final >= threshold
}
