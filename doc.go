/*
Package tfm tracks state transitions in multi-step workflows and aggregates
them into a transition failure matrix: a mapping from (source state,
destination state) to failure count, with derived statistics for hotspot
ranking, rate computation, baseline regression and error clustering.

It separates ingestion (instrumentation wrappers, log parsing) from the
aggregation core and from presentation (Markdown, ASCII, JSON and sankey
renderers). Data flows one direction: ingestors feed the Tracker, renderers
read snapshots of it.

# Usage

Construct a Tracker explicitly and pass it where it is needed; there is no
process-wide instance.

	tracker := tfm.New(tfm.WithLogger(logger))

	ctx := context.Background()
	err := tfm.Track(ctx, tracker, "ParseRequest", func(ctx context.Context) error {
		return parseRequest(ctx, data)
	})

	fmt.Println(tracker.Hotspots(2))

Every recorded transition emits a structured log line in the fixed form

	TRANSITION: <from> -> <to> <SUCCESS|FAILURE> [ERROR: <message>]

which the log ingestor (internal/logparse) can parse back into an
equivalent event stream.
*/
package tfm

// Version is the current release of the tfm library.
var Version = "0.3.0"
