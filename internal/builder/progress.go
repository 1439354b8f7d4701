package builder

// ProgressReporter provides callbacks for reporting build progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when contract discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when contract discovery finishes.
	OnDiscoveryComplete(contracts int)

	// OnExtractionStart is called before extracting contracts.
	OnExtractionStart(totalFiles int)

	// OnFileProcessed is called after each contract is extracted.
	OnFileProcessed(fileName string)

	// OnWritingDocs is called when documentation writing begins.
	OnWritingDocs()

	// OnComplete is called after the documentation tree is written.
	OnComplete(result *Result)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                 {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(contracts int) {}
func (n *NoOpProgressReporter) OnExtractionStart(totalFiles int)  {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)   {}
func (n *NoOpProgressReporter) OnWritingDocs()                    {}
func (n *NoOpProgressReporter) OnComplete(result *Result)         {}
