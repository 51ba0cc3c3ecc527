package translatable

// Translation is the contract for one language-specific variant record.
// The owner back-reference is exposed as the owner's identifier: it is a
// lookup key, not an ownership relation.
type Translation[ID comparable] interface {
	// ID returns the identifier of the translation record.
	ID() ID

	// OwnerID returns the identifier of the translatable entity this
	// translation belongs to.
	OwnerID() ID

	// Locale returns the language variant key, e.g. "en" or "tr".
	Locale() string
}

// Translatable is the contract for an owning entity that holds a collection
// of translations. Implementations decide whether Translations is populated
// eagerly or stays empty until loaded; repository documentation states which.
type Translatable[ID comparable, TR Translation[ID]] interface {
	// ID returns the identifier of the entity.
	ID() ID

	// Translations returns the translations currently attached to the
	// entity. Order is not significant.
	Translations() []TR
}
