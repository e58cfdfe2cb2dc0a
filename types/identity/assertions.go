package identity

// ACTOR

var (
	_ publicKey = ActorPublic{}

	_ privateKey[ActorPublic] = ActorPrivate{}

	// We need this to send identities over the wire via JSON and BSON
	_ canTextMarshal = &ActorPublic{}

	// We need this to persist actor keys to disk.
	_ canTextMarshal = &ActorPrivate{}
)
