package explorer

// WidgetID is the container element id of the explorer's tree widget. The
// client engine addresses render and state calls by this id, and persisted
// state is keyed by it.
const WidgetID = "explorer-tree"

// DefaultTypes is the node-type payload the explorer widget is initialized
// with, mapping the node types FromFS assigns to icons.
const DefaultTypes = `{"folder":{"icon":"fa fa-folder"},"file":{"icon":"fa fa-file"}}`
