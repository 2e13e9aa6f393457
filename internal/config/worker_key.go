package config

type WorkerKeyStruct struct {
	ViewInvalidationQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ViewInvalidationQueue: "view_invalidation_queue",
}
