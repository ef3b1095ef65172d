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
	"os"

	"github.com/scoutforge/camp-ops-go/camp"
	"github.com/scoutforge/camp-ops-go/store"
	"github.com/spf13/cobra"
)

var importCampersCmd = &cobra.Command{
	Use:   "import_campers",
	Short: "Bulk-enroll campers from a CSV roster",
	Long: "Bulk-enroll campers from a CSV roster\n\n" +
		"The CSV needs a Name column; Age and Activities (semicolon-separated)\n" +
		"are optional. Campers already enrolled in another camp are skipped.\n" +
		"This works directly against the data directory, so don't run it while\n" +
		"the server is up.",
	Run: runImportCampers,
}

var (
	importCampName string
	importFile     string
	importDataDir  string
)

func init() {
	rootCmd.AddCommand(importCampersCmd)

	importCampersCmd.Flags().StringVar(&importCampName, "camp", "", "The camp to enroll campers into")
	importCampersCmd.Flags().StringVar(&importFile, "file", "", "The roster CSV to read")
	importCampersCmd.Flags().StringVar(&importDataDir, "data_dir", "data", "The server's data directory")
	_ = importCampersCmd.MarkFlagRequired("camp")
	_ = importCampersCmd.MarkFlagRequired("file")
}

func runImportCampers(cmd *cobra.Command, args []string) {
	f, err := os.Open(importFile)
	must(err)
	rows, rowErrs := camp.ParseRoster(f)
	must(f.Close())

	db, err := store.Open(importDataDir)
	must(err)

	var result camp.ImportResult
	err = db.Camps.Update(func(camps []*camp.Camp) ([]*camp.Camp, error) {
		var err error
		result, err = camp.BulkImportCampers(importCampName, rows, camps)
		if err != nil {
			return nil, err
		}
		return camps, nil
	})
	must(err)

	for _, rowErr := range rowErrs {
		fmt.Println("skipped row:", rowErr) //nolint:forbidigo
	}
	for _, collision := range result.Skipped {
		fmt.Printf("%v is already enrolled in %v\n", collision.Camper, collision.Camp) //nolint:forbidigo
	}
	fmt.Printf("enrolled %v of %v campers into %v\n", //nolint:forbidigo
		len(result.Added), len(rows), importCampName)
}
