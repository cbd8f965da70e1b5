package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epilog-dev/epilog/pkg/discovery"
	"github.com/epilog-dev/epilog/pkg/trajectory"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Deep-dump selected episodes",
	Long: `Dumps everything about selected episodes from one file: top-level and
trajectory fields, reward distribution, state entity counts, final
actions and rewards, and the full last state and action as JSON.
Without --episodes or --all, picks the first positive-reward, first
negative-reward, and first zero-action episode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := trajectory.ReadRawFile(discovery.ExpandPath(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("Total episodes in file: %d\n", len(records))

		all, _ := cmd.Flags().GetBool("all")
		wanted, _ := cmd.Flags().GetIntSlice("episodes")

		var indices []int
		switch {
		case all:
			for i := range records {
				indices = append(indices, i)
			}
		case len(wanted) > 0:
			for _, n := range wanted {
				if n >= 1 && n <= len(records) {
					indices = append(indices, n-1)
				}
			}
		default:
			indices = defaultSelection(records)
		}

		for _, idx := range indices {
			inspectEpisode(records[idx], idx+1)
		}
		return nil
	},
}

// defaultSelection picks one representative of each interesting case:
// first positive total reward, first negative, first with no actions.
func defaultSelection(records []map[string]interface{}) []int {
	var indices []int

	for i, rec := range records {
		if sum, n := rewardSum(rec); n > 0 && sum > 0 {
			indices = append(indices, i)
			break
		}
	}
	for i, rec := range records {
		if sum, n := rewardSum(rec); n > 0 && sum < 0 {
			indices = append(indices, i)
			break
		}
	}
	for i, rec := range records {
		if len(rawList(rec, "actions")) == 0 {
			indices = append(indices, i)
			break
		}
	}
	return indices
}

func rawTrajectory(rec map[string]interface{}) map[string]interface{} {
	t, _ := rec["trajectory"].(map[string]interface{})
	return t
}

func rawList(rec map[string]interface{}, field string) []interface{} {
	t := rawTrajectory(rec)
	if t == nil {
		return nil
	}
	l, _ := t[field].([]interface{})
	return l
}

func rewardSum(rec map[string]interface{}) (float64, int) {
	rewards := rawList(rec, "rewards")
	var sum float64
	n := 0
	for _, r := range rewards {
		if v, ok := r.(float64); ok {
			sum += v
			n++
		}
	}
	return sum, n
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stateList(state map[string]interface{}, field string) []interface{} {
	l, _ := state[field].([]interface{})
	return l
}

// expectedStateFields are the fields a game state normally carries.
// Anything else is flagged during inspection.
var expectedStateFields = map[string]bool{
	"known_networks":   true,
	"known_hosts":      true,
	"controlled_hosts": true,
	"known_services":   true,
	"known_data":       true,
	"known_blocks":     true,
}

func printStateCounts(state map[string]interface{}) {
	fmt.Printf("  Known networks: %d\n", len(stateList(state, "known_networks")))
	fmt.Printf("  Known hosts: %d\n", len(stateList(state, "known_hosts")))
	fmt.Printf("  Controlled hosts: %d\n", len(stateList(state, "controlled_hosts")))
	fmt.Printf("  State keys: %v\n", sortedKeys(state))
}

func inspectEpisode(rec map[string]interface{}, num int) {
	bar := strings.Repeat("=", 80)
	fmt.Printf("\n%s\n", bar)
	fmt.Printf("EPISODE %d\n", num)
	fmt.Printf("%s\n\n", bar)

	fmt.Println("Top-level fields:")
	for _, key := range sortedKeys(rec) {
		switch v := rec[key].(type) {
		case []interface{}:
			fmt.Printf("  %s: [%d items]\n", key, len(v))
		case map[string]interface{}:
			fmt.Printf("  %s: {...} with keys: %v\n", key, sortedKeys(v))
		default:
			fmt.Printf("  %s: %v\n", key, v)
		}
	}

	traj := rawTrajectory(rec)
	fmt.Println("\nTrajectory fields:")
	for _, key := range sortedKeys(traj) {
		if l, ok := traj[key].([]interface{}); ok {
			fmt.Printf("  %s: [%d items]\n", key, len(l))
		} else {
			fmt.Printf("  %s: %v\n", key, traj[key])
		}
	}

	states := rawList(rec, "states")
	actions := rawList(rec, "actions")
	rewards := rawList(rec, "rewards")

	fmt.Printf("\nEpisode length: %d states, %d actions\n", len(states), len(actions))

	if sum, n := rewardSum(rec); n > 0 {
		min, max := 0.0, 0.0
		first := true
		for _, r := range rewards {
			v, ok := r.(float64)
			if !ok {
				continue
			}
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		fmt.Printf("Total reward: %v\n", sum)
		fmt.Printf("Reward distribution: min=%v, max=%v, avg=%.2f\n", min, max, sum/float64(n))
	}

	var lastState map[string]interface{}
	if len(states) > 0 {
		if first, ok := states[0].(map[string]interface{}); ok {
			fmt.Println("\nFirst state:")
			printStateCounts(first)
		}
		if last, ok := states[len(states)-1].(map[string]interface{}); ok {
			lastState = last
			fmt.Println("\nLast state:")
			printStateCounts(last)

			for _, key := range sortedKeys(last) {
				if !expectedStateFields[key] {
					fmt.Printf("  SPECIAL FIELD: %s = %v\n", key, last[key])
				}
			}
		}
	}

	if len(actions) > 0 {
		fmt.Println("\nLast 3 actions:")
		start := len(actions) - 3
		if start < 0 {
			start = 0
		}
		for i := start; i < len(actions); i++ {
			action, _ := actions[i].(map[string]interface{})
			fmt.Printf("  Action %d: %v\n", i+1, action["action_type"])

			var extras []string
			for _, k := range sortedKeys(action) {
				if k != "action_type" && k != "parameters" {
					extras = append(extras, k)
				}
			}
			if len(extras) > 0 {
				fmt.Printf("    Special fields: %s\n", strings.Join(extras, ", "))
			}
		}
	}

	if len(rewards) > 0 {
		start := len(rewards) - 5
		if start < 0 {
			start = 0
		}
		fmt.Printf("\nLast 5 rewards: %v\n", rewards[start:])
	}

	if lastState != nil {
		fmt.Println("\nFull last state:")
		printJSON(lastState)
	}
	if len(actions) > 0 {
		fmt.Println("\nFull last action:")
		printJSON(actions[len(actions)-1])
	}
}

func printJSON(v interface{}) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(pretty))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntSlice("episodes", nil, "1-based episode numbers to inspect")
	inspectCmd.Flags().Bool("all", false, "inspect every episode")
}
