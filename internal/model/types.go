// Package model defines the core record types and their enumerated kinds.
package model

import "time"

// EntityType classifies the kind of object a record is about.
type EntityType string

const (
	EntityModel     EntityType = "model"
	EntityColumn    EntityType = "column"
	EntityMetric    EntityType = "metric"
	EntityDimension EntityType = "dimension"
	EntityTable     EntityType = "table"
	EntityView      EntityType = "view"
	EntitySchema    EntityType = "schema"
	EntityDatabase  EntityType = "database"
	EntityDAG       EntityType = "dag"
	EntityTask      EntityType = "task"
	EntitySchedule  EntityType = "schedule"
	EntityDashboard EntityType = "dashboard"
)

// ValidEntityTypes is the closed set of entity types.
var ValidEntityTypes = map[EntityType]bool{
	EntityModel: true, EntityColumn: true, EntityMetric: true,
	EntityDimension: true, EntityTable: true, EntityView: true,
	EntitySchema: true, EntityDatabase: true, EntityDAG: true,
	EntityTask: true, EntitySchedule: true, EntityDashboard: true,
}

// ChangeType classifies what happened to an entity.
type ChangeType string

const (
	ChangeCreated           ChangeType = "created"
	ChangeModified          ChangeType = "modified"
	ChangeRemoved           ChangeType = "removed"
	ChangeRenamed           ChangeType = "renamed"
	ChangeLogicChanged      ChangeType = "logic_changed"
	ChangeDependencyAdded   ChangeType = "dependency_added"
	ChangeDependencyRemoved ChangeType = "dependency_removed"
	ChangeTestAdded         ChangeType = "test_added"
)

// DecisionSource is the mechanism that produced a decision record.
type DecisionSource string

const (
	SourceGitCommit       DecisionSource = "git_commit"
	SourcePRDescription   DecisionSource = "pr_description"
	SourcePRComment       DecisionSource = "pr_comment"
	SourceCodeComment     DecisionSource = "code_comment"
	SourceYAMLDescription DecisionSource = "yaml_description"
	SourceUserCorrection  DecisionSource = "user_correction"
)

// DataTool identifies the data-stack tool a record came from.
type DataTool string

const (
	ToolDBT        DataTool = "dbt"
	ToolSQLMesh    DataTool = "sqlmesh"
	ToolSnowflake  DataTool = "snowflake"
	ToolDatabricks DataTool = "databricks"
	ToolBigQuery   DataTool = "bigquery"
	ToolAirflow    DataTool = "airflow"
	ToolDagster    DataTool = "dagster"
	ToolLooker     DataTool = "looker"
)

// Decision is a captured rationale for why an entity is shaped a certain way.
// Confidence is in [0,1]. Re-adding a decision with the same ID overwrites it.
type Decision struct {
	ID         string         `json:"id"`
	Entity     string         `json:"entity"`
	EntityType EntityType     `json:"entity_type"`
	ChangeType ChangeType     `json:"change_type"`
	Why        string         `json:"why"`
	Context    string         `json:"context,omitempty"`
	Source     DecisionSource `json:"source"`
	SourceRef  string         `json:"source_ref"`
	Author     string         `json:"author"`
	Timestamp  time.Time      `json:"timestamp"`
	Confidence float64        `json:"confidence"`
	Tags       []string       `json:"tags,omitempty"`
	Tool       DataTool       `json:"tool"`
}

// ConventionType classifies a detected naming or structural pattern.
type ConventionType string

const (
	ConventionPrefix             ConventionType = "prefix"
	ConventionSuffix             ConventionType = "suffix"
	ConventionCase               ConventionType = "case"
	ConventionSeparator          ConventionType = "separator"
	ConventionDirectoryStructure ConventionType = "directory_structure"
	ConventionTestPattern        ConventionType = "test_pattern"
)

// Convention is a naming/structural pattern detected across 3+ entities.
// Extractors only emit conventions at frequency >= 3, but the store does not
// enforce that.
type Convention struct {
	ID         string         `json:"id"`
	Type       ConventionType `json:"type"`
	Pattern    string         `json:"pattern"`
	AppliesTo  []EntityType   `json:"applies_to"`
	Examples   []string       `json:"examples"`
	Frequency  int            `json:"frequency"`
	Confidence float64        `json:"confidence"`
	DetectedAt time.Time      `json:"detected_at"`
	Tool       DataTool       `json:"tool"`
}

// CorrectionScope controls where a correction applies.
type CorrectionScope string

const (
	ScopeGlobal  CorrectionScope = "global"
	ScopeEntity  CorrectionScope = "entity"
	ScopePattern CorrectionScope = "pattern"
)

// CorrectionPriority orders corrections when context space is contested.
type CorrectionPriority string

const (
	PriorityHigh   CorrectionPriority = "high"
	PriorityMedium CorrectionPriority = "medium"
	PriorityLow    CorrectionPriority = "low"
)

// Rank maps a priority to its sort weight. Unknown values rank lowest.
func (p CorrectionPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Correction is user-asserted knowledge that overrides or supplements
// extracted context.
type Correction struct {
	ID         string             `json:"id"`
	Entity     string             `json:"entity"`
	EntityType EntityType         `json:"entity_type,omitempty"`
	Correction string             `json:"correction"`
	Context    string             `json:"context,omitempty"`
	AddedBy    string             `json:"added_by"`
	AddedAt    time.Time          `json:"added_at"`
	Scope      CorrectionScope    `json:"scope"`
	Priority   CorrectionPriority `json:"priority"`
}

// Entity is an extracted named object from the tracked project. Informational
// only; the retriever does not consume these directly.
type Entity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      EntityType `json:"type"`
	Tool      DataTool   `json:"tool"`
	Path      string     `json:"path,omitempty"`
	Metadata  string     `json:"metadata,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ContextResponse is the tiered payload returned by context retrieval.
type ContextResponse struct {
	ImmediateDecisions []Decision   `json:"immediate_decisions"`
	RelatedDecisions   []Decision   `json:"related_decisions"`
	Corrections        []Correction `json:"corrections"`
	Conventions        []Convention `json:"conventions"`
}

// Empty reports whether the response carries no records at all.
func (r *ContextResponse) Empty() bool {
	return len(r.ImmediateDecisions) == 0 && len(r.RelatedDecisions) == 0 &&
		len(r.Corrections) == 0 && len(r.Conventions) == 0
}
