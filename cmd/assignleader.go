//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/scoutforge/camp-ops-go/lib/conv"
	"github.com/scoutforge/camp-ops-go/store"
	"github.com/spf13/cobra"
)

var assignLeaderCmd = &cobra.Command{
	Use:   "assign_leader",
	Short: "Assign a scout leader to camps picked off the numbered listing",
	Long: "Assign a scout leader to camps picked off the numbered listing\n\n" +
		"Run without --camps to print the listing, then pass the selection as\n" +
		"a comma-separated list of positions, e.g. --camps 1,3. The selection\n" +
		"replaces the leader's previous supervision set entirely, and a\n" +
		"scheduling conflict within the selection rejects the whole thing.\n" +
		"This works directly against the data directory, so don't run it\n" +
		"while the server is up.",
	Run: runAssignLeader,
}

var (
	assignLeaderName string
	assignSelection  string
	assignDataDir    string
)

func init() {
	rootCmd.AddCommand(assignLeaderCmd)

	assignLeaderCmd.Flags().StringVar(&assignLeaderName, "leader", "", "The scout leader's username")
	assignLeaderCmd.Flags().StringVar(&assignSelection, "camps", "", "Selected camp numbers, e.g. 1,3")
	assignLeaderCmd.Flags().StringVar(&assignDataDir, "data_dir", "data", "The server's data directory")
	_ = assignLeaderCmd.MarkFlagRequired("leader")
}

func runAssignLeader(cmd *cobra.Command, args []string) {
	must(runAssignLeaderInternal(assignDataDir, assignLeaderName, assignSelection, os.Stdout))
}

func runAssignLeaderInternal(dataDir, leader, selection string, out io.Writer) error {
	db, err := store.Open(dataDir)
	if err != nil {
		return fmt.Errorf("[Open]: %w", err)
	}
	if selection == "" {
		camps, _, err := db.Camps.Load()
		if err != nil {
			return fmt.Errorf("[Load]: %w", err)
		}
		for i, c := range camps {
			fmt.Fprintf(out, "%d. %v (%v to %v)\n", i+1, c.Name, c.StartDate, c.EndDate)
		}
		return nil
	}
	indices, err := conv.ParseIntList(selection)
	if err != nil {
		return fmt.Errorf("[ParseIntList]: %w", err)
	}
	var supervised []string
	err = db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		names, err := camp.SelectByIndices(indices, camps)
		if err != nil {
			return nil, err
		}
		supervised, err = camp.AssignLeaderToCamps(leader, names, camps)
		if err != nil {
			return nil, err
		}
		return camps, nil
	})
	if err != nil {
		return fmt.Errorf("[Update]: %w", err)
	}
	fmt.Fprintf(out, "%v now supervises %v\n", leader, strings.Join(supervised, ", "))
	return nil
}
