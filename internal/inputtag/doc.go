// internal/inputtag/doc.go

/*
Package inputtag provides a structured representation of the input tags used
by module parameters to reference data products, based on the canonical
format `label:instance:process`.

Only the producer label is required. The instance and process parts are
optional, and the short forms `label` and `label:instance` are the canonical
spelling whenever the trailing parts are empty.

A tag is a weak reference: it names a product by the label of the module that
put it into the event, and nothing guarantees that such a module exists in the
current process. Resolution against a process happens in package plan.
*/
package inputtag
