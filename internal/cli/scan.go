// Package cli provides command-line interface implementation for asepscan.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"asepscan/internal/asep"
	"asepscan/internal/core"
	"asepscan/internal/logger"
	"asepscan/internal/parse"
	"asepscan/internal/render"
	"asepscan/internal/schema"
	"asepscan/internal/snapshot"
)

var (
	snapshotDir   string
	processesFile string
	liveProcesses bool
	hiveOffsetStr string
	extraKey      string
	asepTypes     string
	verbose       bool
	outDir        string
	jsonReport    bool
	encryptAge    string
	logLevel      string
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a memory-snapshot export for registry autostart entries",
	Long: `The scan command parses the registry hives listed in a snapshot directory's
manifest, extracts autostart entries per mechanism, correlates them with the
snapshot's process inventory, and writes a report, optionally encrypted with
an age public key.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&snapshotDir, "snapshot", "", "snapshot directory containing snapshot.json and the carved hive files")
	scanCmd.Flags().StringVar(&processesFile, "processes", "", "process listing file (default: <snapshot>/processes.json)")
	scanCmd.Flags().BoolVar(&liveProcesses, "live-processes", false, "correlate against the live system's processes instead of a listing file (windows only)")
	scanCmd.Flags().StringVar(&hiveOffsetStr, "hive-offset", "", "restrict the scan to the hive at this storage offset (decimal or 0x hex)")
	scanCmd.Flags().StringVar(&extraKey, "key", "", "additional registry key path scanned as a run key in every hive")
	scanCmd.Flags().StringVar(&asepTypes, "types", "", "comma-separated ASEP categories: autoruns,services,appinit,winlogon (default: all)")
	scanCmd.Flags().BoolVar(&verbose, "verbose", false, "show entries normally suppressed as stock OS noise")
	scanCmd.Flags().StringVar(&outDir, "out", ".", "output directory for the report file")
	scanCmd.Flags().BoolVar(&jsonReport, "json", false, "write the report as JSON rows instead of text")
	scanCmd.Flags().StringVar(&encryptAge, "encrypt-age", "", "Age public key for report encryption (must start with age1)")
	scanCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	scanCmd.MarkFlagRequired("snapshot")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger.Setup(logLevel)
	now := time.Now()

	categories, err := parse.ParseCategories(asepTypes)
	if err != nil {
		return err
	}

	hiveOffset, hiveOffsetSet, err := parse.ParseHiveOffset(hiveOffsetStr)
	if err != nil {
		return err
	}

	ageRecipientSet := false
	if encryptAge != "" {
		if err := core.ValidateAgePublicKey(encryptAge); err != nil {
			return fmt.Errorf("invalid --encrypt-age: %w", err)
		}
		ageRecipientSet = true
	}

	// Build the process inventory first; it is shared read-only by every
	// extractor for the rest of the run.
	records, live, err := loadProcessRecords()
	if err != nil {
		return err
	}
	inventory := asep.NewProcessInventory(records)
	log.Debug().Int("processes", len(inventory)).Msg("process inventory built")

	manifest, err := snapshot.LoadManifest(snapshotDir)
	if err != nil {
		return err
	}

	hives, closeHives := openHives(manifest)
	defer closeHives()

	scanner := asep.NewScanner(inventory, asep.Options{
		Categories:    categories,
		Verbose:       verbose,
		HiveOffset:    hiveOffset,
		HiveOffsetSet: hiveOffsetSet,
		ExtraKey:      extraKey,
	})
	report, err := scanner.Calculate(hives)
	if err != nil {
		return err
	}

	var rendered bytes.Buffer
	extension := "txt"
	if jsonReport {
		extension = "json"
		if err := render.JSON(&rendered, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	} else {
		if err := render.Text(&rendered, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	meta, err := core.WriteReport(outDir, filepath.Base(snapshotDir), extension, now, rendered.Bytes(), encryptAge)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Info().Str("report", meta.Path).Int64("bytes", meta.BytesWritten).Msg("report written")

	output := schema.NewRunOutput(snapshotDir, categories, verbose, live,
		len(inventory), len(manifest.Hives), report, now)
	output.SetReport(meta.Path, meta.Encrypted, ageRecipientSet)
	if hiveOffsetSet {
		output.HiveOffset = hiveOffsetStr
	}
	output.ExtraKey = extraKey

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))

	return nil
}

// loadProcessRecords picks the inventory source: the live system on request,
// otherwise the snapshot's process listing file.
func loadProcessRecords() ([]asep.ProcessRecord, bool, error) {
	if liveProcesses {
		records, err := snapshot.LiveProcesses()
		if err != nil {
			return nil, false, err
		}
		return records, true, nil
	}

	path := processesFile
	if path == "" {
		path = filepath.Join(snapshotDir, snapshot.ProcessesFilename)
	}
	records, err := snapshot.LoadProcesses(path)
	if err != nil {
		return nil, false, err
	}
	return records, false, nil
}

// openHives parses every hive the manifest lists. A hive file that cannot
// be opened or parsed still yields an entry with a nil root so the scanner
// can apply its soft-failure policy; the returned closer releases all
// successfully opened hives.
func openHives(manifest *snapshot.Manifest) ([]asep.HiveInfo, func()) {
	hives := make([]asep.HiveInfo, 0, len(manifest.Hives))
	var opened []*snapshot.Hive

	for _, ref := range manifest.Hives {
		info := asep.HiveInfo{Name: ref.Name, Offset: ref.Offset}
		hive, err := snapshot.Open(manifest.HivePath(ref))
		if err != nil {
			log.Warn().Str("hive", ref.Name).Err(err).Msg("failed to open hive file")
		} else {
			opened = append(opened, hive)
			info.Root = hive.Root()
		}
		hives = append(hives, info)
	}

	return hives, func() {
		for _, h := range opened {
			h.Close()
		}
	}
}
