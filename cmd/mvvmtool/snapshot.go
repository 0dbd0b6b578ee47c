package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/CrimsonAS/qmvvm/internal/snapshots"
	"github.com/CrimsonAS/qmvvm/mvvm/jsondoc"
)

func (t *tool) snapshot(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: expected save, list or restore", errUsage)
	}
	switch args[0] {
	case "save":
		return t.snapshotSave(args[1:])
	case "list":
		return t.snapshotList(args[1:])
	case "restore":
		return t.snapshotRestore(args[1:])
	default:
		return fmt.Errorf("%w: unknown snapshot command %q", errUsage, args[0])
	}
}

func (t *tool) openStore(dir string) (*snapshots.Store, error) {
	return snapshots.Open(dir, t.log.Named("snapshots"))
}

// snapshot save [-db DIR] [-note TEXT] NAME FILE
func (t *tool) snapshotSave(args []string) error {
	fs := t.flags("snapshot save")
	db := fs.String("db", t.cfg.Snapshots.Dir, "snapshot database `dir`")
	note := fs.String("note", "", "note stored with the version")
	if err := parse(fs, args, 2, 2); err != nil {
		return err
	}

	// Documents are validated and stored uncompressed, whatever the file uses
	records, err := jsondoc.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := jsondoc.WriteRecords(&buf, records, 0); err != nil {
		return err
	}

	store, err := t.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	version, err := store.Save(fs.Arg(0), buf.Bytes(), *note)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.stdout, "saved %s version %d\n", fs.Arg(0), version.Number)
	return nil
}

// snapshot list [-db DIR] [NAME]
func (t *tool) snapshotList(args []string) error {
	fs := t.flags("snapshot list")
	db := fs.String("db", t.cfg.Snapshots.Dir, "snapshot database `dir`")
	if err := parse(fs, args, 0, 1); err != nil {
		return err
	}

	store, err := t.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	if fs.NArg() == 0 {
		names, err := store.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(t.stdout, name)
		}
		return nil
	}

	history, err := store.History(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, v := range history {
		fmt.Fprintf(t.stdout, "%d\t%s\t%d bytes\t%s\n", v.Number, v.Created.Format(time.RFC3339), v.Size, v.Note)
	}
	return nil
}

// snapshot restore [-db DIR] [-version N] NAME FILE
func (t *tool) snapshotRestore(args []string) error {
	fs := t.flags("snapshot restore")
	db := fs.String("db", t.cfg.Snapshots.Dir, "snapshot database `dir`")
	number := fs.Int("version", 0, "version to restore, the latest when 0")
	if err := parse(fs, args, 2, 2); err != nil {
		return err
	}

	store, err := t.openStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	var snapshot *snapshots.Snapshot
	if *number == 0 {
		snapshot, err = store.Latest(fs.Arg(0))
	} else {
		snapshot, err = store.Get(fs.Arg(0), *number)
	}
	if err != nil {
		return err
	}

	records, err := jsondoc.ReadRecords(bytes.NewReader(snapshot.Document))
	if err != nil {
		return err
	}
	if err := jsondoc.WriteFile(fs.Arg(1), records, t.cfg.Document.Indent); err != nil {
		return err
	}
	fmt.Fprintf(t.stdout, "restored %s version %d to %s\n", fs.Arg(0), snapshot.Number, fs.Arg(1))
	return nil
}
