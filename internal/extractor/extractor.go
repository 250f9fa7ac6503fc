// =============================================================================
// ARXML to XLSX Extractor - Container Extractor
// =============================================================================
//
// This module flattens the ECU configuration containers of an ARXML document
// into an ordered list of records.
//
// DOCUMENT SHAPE:
//
//   <CONTAINERS>                              <!-- grouping element -->
//     <ECUC-CONTAINER-VALUE>                  <!-- top-level container -->
//       <SHORT-NAME>CanGeneral</SHORT-NAME>
//       <DEFINITION-REF>/Can/CanGeneral</DEFINITION-REF>
//       <SUB-CONTAINERS>                      <!-- grouping element -->
//         <ECUC-CONTAINER-VALUE>              <!-- sub-container -->
//           <SHORT-NAME>CanMainFunctionRWPeriods</SHORT-NAME>
//           <DEFINITION-REF>/Can/CanGeneral/CanMainFunctionRWPeriods</DEFINITION-REF>
//         </ECUC-CONTAINER-VALUE>
//       </SUB-CONTAINERS>
//     </ECUC-CONTAINER-VALUE>
//   </CONTAINERS>
//
// OUTPUT ORDER:
//   Document order. A container's record comes right before the records of
//   its own sub-containers, which come before the next top-level container.
//
// DEPTH:
//   MaxDepth bounds the walk. The default of 2 reads containers and their
//   direct sub-containers only; sub-containers of sub-containers are ignored.
//
// =============================================================================

package extractor

import (
	"fmt"
	"log/slog"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/arxml"
	"github.com/ginjaninja78/arxml-to-xlsx/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Policy decides what happens when a container lacks a required field.
type Policy string

const (
	// PolicyAbort stops extraction at the first malformed container.
	PolicyAbort Policy = "abort"

	// PolicySkip drops the malformed container together with its
	// sub-containers, records the error in Result.Skipped and carries on.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAbort, PolicySkip:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown malformed-container policy %q (want %q or %q)", s, PolicyAbort, PolicySkip)
	}
}

// Options configures element lookup. All names are local names qualified by
// Namespace.
type Options struct {
	// Namespace is the namespace URI every looked-up element must carry.
	Namespace string

	// ContainersGroup is the grouping element holding top-level containers.
	ContainersGroup string

	// SubContainersGroup is the grouping element holding nested containers.
	SubContainersGroup string

	// ContainerElements are the element names accepted as containers.
	ContainerElements []string

	// ShortName and DefinitionRef are the two required field elements.
	ShortName     string
	DefinitionRef string

	// MaxDepth is the number of nesting levels read. 1 reads top-level
	// containers only, 2 adds their sub-containers.
	MaxDepth int

	// OnMalformed selects the malformed-container policy.
	OnMalformed Policy
}

// DefaultOptions returns the AUTOSAR R4.0 lookup names.
func DefaultOptions() Options {
	return Options{
		Namespace:          "http://autosar.org/schema/r4.0",
		ContainersGroup:    "CONTAINERS",
		SubContainersGroup: "SUB-CONTAINERS",
		ContainerElements:  []string{"ECUC-CONTAINER-VALUE"},
		ShortName:          "SHORT-NAME",
		DefinitionRef:      "DEFINITION-REF",
		MaxDepth:           2,
		OnMalformed:        PolicyAbort,
	}
}

// Validate checks the options before a walk.
func (o Options) Validate() error {
	if o.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", o.MaxDepth)
	}
	if o.ContainersGroup == "" || o.SubContainersGroup == "" {
		return fmt.Errorf("container grouping element names must not be empty")
	}
	if len(o.ContainerElements) == 0 {
		return fmt.Errorf("at least one container element name is required")
	}
	if o.ShortName == "" || o.DefinitionRef == "" {
		return fmt.Errorf("field element names must not be empty")
	}
	if _, err := ParsePolicy(string(o.OnMalformed)); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// RESULT
// =============================================================================

// WarningCode identifies a non-fatal extraction outcome.
type WarningCode string

// WarningEmptyResult is raised when the document holds no containers at all.
const WarningEmptyResult WarningCode = "empty-result"

// Warning is an advisory the caller should surface but not fail on.
type Warning struct {
	Code    WarningCode
	Message string
}

// Stats counts what a walk produced.
type Stats struct {
	Containers    int
	SubContainers int
	Skipped       int
}

// Result is the outcome of one extraction.
type Result struct {
	// Records is the flattened record sequence, in document order.
	Records []types.Record

	// Skipped holds the containers dropped under PolicySkip.
	Skipped []*MalformedInputError

	// Warnings holds advisories such as WarningEmptyResult.
	Warnings []Warning

	Stats Stats
}

// Empty reports whether the document had no containers.
func (r *Result) Empty() bool {
	for _, w := range r.Warnings {
		if w.Code == WarningEmptyResult {
			return true
		}
	}
	return false
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract walks the tree under root and returns one record per container and
// per nested sub-container, down to opts.MaxDepth.
//
// PARAMETERS:
//   - root: The document element (or any subtree) to search.
//   - opts: Lookup names, depth limit and malformed-container policy.
//   - log:  Destination for progress and skip messages. May be nil.
//
// RETURNS:
//   - The result. A document without containers yields an empty record list
//     and a WarningEmptyResult, not an error.
//   - A *MalformedInputError under PolicyAbort when a container lacks a field.
func Extract(root *arxml.Element, opts Options, log *slog.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor options: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if root == nil {
		return nil, fmt.Errorf("extract: nil document root")
	}

	w := &walker{opts: opts, log: log, result: &Result{Records: []types.Record{}}}

	topLevel := arxml.FindAll(root, w.isTopLevelContainer, true)
	log.Debug("top-level containers located", "count", len(topLevel))

	if len(topLevel) == 0 {
		msg := fmt.Sprintf("no %s elements found under %s in namespace %q",
			opts.ContainersGroup, root.Name.Local, opts.Namespace)
		log.Warn(msg)
		w.result.Warnings = append(w.result.Warnings, Warning{Code: WarningEmptyResult, Message: msg})
		return w.result, nil
	}

	for i, el := range topLevel {
		if err := w.visit(el, i+1, 1); err != nil {
			return nil, err
		}
	}

	log.Debug("extraction finished",
		"records", len(w.result.Records),
		"containers", w.result.Stats.Containers,
		"sub_containers", w.result.Stats.SubContainers,
		"skipped", w.result.Stats.Skipped)

	return w.result, nil
}

// walker holds the per-call state of one extraction.
type walker struct {
	opts   Options
	log    *slog.Logger
	result *Result
}

// visit emits the record for el and then, below the depth limit, for its
// sub-containers.
func (w *walker) visit(el *arxml.Element, position, depth int) error {
	tag := types.TagSubContainer
	if depth == 1 {
		tag = types.TagContainer
	}

	record, err := w.readRecord(el, tag, position, depth)
	if err != nil {
		if w.opts.OnMalformed == PolicyAbort {
			return err
		}
		w.log.Warn("skipping malformed container", "error", err)
		w.result.Skipped = append(w.result.Skipped, err)
		w.result.Stats.Skipped++
		return nil
	}

	w.result.Records = append(w.result.Records, record)
	if depth == 1 {
		w.result.Stats.Containers++
	} else {
		w.result.Stats.SubContainers++
	}
	w.log.Debug("container record",
		"tag", record.Tag.String(),
		"short_name", record.ShortName,
		"definition_ref", record.DefinitionRef)

	if depth >= w.opts.MaxDepth {
		return nil
	}

	for _, group := range w.owned(el, w.isSubContainersGroup) {
		for _, child := range group.Children {
			if !w.isContainer(child) {
				continue
			}
			if err := w.visit(child, position, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// readRecord reads both required fields of a container. A missing or empty
// field becomes a MalformedInputError.
func (w *walker) readRecord(el *arxml.Element, tag types.Tag, position, depth int) (types.Record, *MalformedInputError) {
	shortName, okName := w.field(el, w.opts.ShortName)
	definitionRef, okRef := w.field(el, w.opts.DefinitionRef)

	if okName && okRef {
		return types.Record{Tag: tag, ShortName: shortName, DefinitionRef: definitionRef}, nil
	}

	malformed := &MalformedInputError{
		Position:  position,
		Depth:     depth,
		Line:      el.Line,
		Path:      el.Path(),
		ShortName: shortName,
	}
	if !okName {
		malformed.Missing = append(malformed.Missing, w.opts.ShortName)
	}
	if !okRef {
		malformed.Missing = append(malformed.Missing, w.opts.DefinitionRef)
	}
	return types.Record{}, malformed
}

// field returns the text of a container's own field element, which is always
// a direct child. Parameter and reference values carry DEFINITION-REF
// elements of their own further down and must never be read here.
func (w *walker) field(el *arxml.Element, local string) (string, bool) {
	direct := arxml.ChildrenNamed(el, w.opts.Namespace, local)
	if len(direct) == 0 {
		return "", false
	}
	text := direct[0].Text()
	return text, text != ""
}

// owned returns the descendants of el matching the predicate without
// entering nested container elements.
func (w *walker) owned(el *arxml.Element, match func(*arxml.Element) bool) []*arxml.Element {
	var out []*arxml.Element
	arxml.Walk(el, func(cur *arxml.Element, depth int) arxml.WalkAction {
		if depth == 0 {
			return arxml.Continue
		}
		if w.isContainer(cur) {
			return arxml.SkipChildren
		}
		if match(cur) {
			out = append(out, cur)
			return arxml.SkipChildren
		}
		return arxml.Continue
	})
	return out
}

func (w *walker) isContainer(el *arxml.Element) bool {
	for _, name := range w.opts.ContainerElements {
		if el.Is(w.opts.Namespace, name) {
			return true
		}
	}
	return false
}

func (w *walker) isTopLevelContainer(el *arxml.Element) bool {
	return w.isContainer(el) && el.Parent != nil && el.Parent.Is(w.opts.Namespace, w.opts.ContainersGroup)
}

func (w *walker) isSubContainersGroup(el *arxml.Element) bool {
	return el.Is(w.opts.Namespace, w.opts.SubContainersGroup)
}
